package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/foodhub/internal/domain"
	"github.com/talkincode/foodhub/internal/webserver"
	"go.uber.org/zap"
)

type orderPayload struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Pincode     string `json:"pincode"`
	Phone       string `json:"phone"`
	Product     string `json:"product"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

func registerOrderRoutes() {
	webserver.POST("/api/order", createOrder)
}

// createOrder stores a checkout. Payment is not processed; the status is
// always PaymentStatusSuccess whatever the client sends.
func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return message(c, http.StatusBadRequest, "Invalid order")
	}

	now := time.Now()
	order := domain.Order{
		Name:          payload.Name,
		Street:        payload.Street,
		City:          payload.City,
		Pincode:       payload.Pincode,
		Phone:         payload.Phone,
		Product:       payload.Product,
		Description:   payload.Description,
		Price:         payload.Price,
		PaymentStatus: domain.PaymentStatusSuccess,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetAppContext(c).Orders().Create(detached(c), &order); err != nil {
		zap.L().Error("save order failed", zap.Error(err))
		return message(c, http.StatusInternalServerError, "Error saving order")
	}
	zap.L().Info("order saved", zap.String("id", order.ID), zap.String("product", order.Product))
	return message(c, http.StatusOK, "Order saved")
}
