package app

import (
	"context"
	"os"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/process"
	"go.uber.org/zap"
)

const monitorInterval = "@every 30s"

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// runtimeStats holds the gauges refreshed by the background jobs
type runtimeStats struct {
	storeUp prometheus.Gauge
	cpuUse  prometheus.Gauge
	memUse  prometheus.Gauge
}

func newRuntimeStats() *runtimeStats {
	return &runtimeStats{
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "foodhub",
			Name:      "store_up",
			Help:      "1 when the document store answered the last ping",
		}),
		cpuUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "foodhub",
			Name:      "process_cpu_percent",
			Help:      "CPU usage of the server process",
		}),
		memUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "foodhub",
			Name:      "process_rss_megabytes",
			Help:      "Resident memory of the server process",
		}),
	}
}

func (s *runtimeStats) Describe(ch chan<- *prometheus.Desc) {
	s.storeUp.Describe(ch)
	s.cpuUse.Describe(ch)
	s.memUse.Describe(ch)
}

func (s *runtimeStats) Collect(ch chan<- prometheus.Metric) {
	s.storeUp.Collect(ch)
	s.cpuUse.Collect(ch)
	s.memUse.Collect(ch)
}

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	a.pool, err = ants.NewPool(2, ants.WithNonblocking(true))
	if err != nil {
		zap.S().Errorf("init job pool error %s", err.Error())
		return
	}

	_, err = a.sched.AddFunc(monitorInterval, func() {
		for _, task := range []func(){a.SchedStoreMonitorTask, a.SchedProcessMonitorTask} {
			if err := a.pool.Submit(task); err != nil {
				zap.L().Warn("monitor task skipped", zap.Error(err))
			}
		}
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

func (a *Application) stopJob() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.pool != nil {
		a.pool.Release()
	}
}

// SchedStoreMonitorTask pings the store and logs when reachability changes
func (a *Application) SchedStoreMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.store.Ping(ctx)
	up := err == nil
	if up != a.storeUp.Swap(up) {
		if up {
			zap.L().Info("document store reachable again", zap.String("type", a.store.Name()))
		} else {
			zap.L().Error("document store unreachable", zap.String("type", a.store.Name()), zap.Error(err))
		}
	}
	if up {
		a.stats.storeUp.Set(1)
	} else {
		a.stats.storeUp.Set(0)
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // G115: PID is always within int32 range
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		a.stats.cpuUse.Set(cpuuse)
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		a.stats.memUse.Set(float64(meminfo.RSS) / 1024 / 1024)
	}
}
