package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/foodhub/internal/domain"
	"github.com/talkincode/foodhub/internal/repository"
	"github.com/talkincode/foodhub/internal/webserver"
	"go.uber.org/zap"
)

type menuPayload struct {
	FoodName    string `json:"foodName"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

type menuRenamePayload struct {
	ID          string `json:"id"`
	NewFoodName string `json:"newFoodName"`
}

// registerMenuRoutes registers menu item CRUD and seed endpoints
func registerMenuRoutes() {
	webserver.POST("/insert", insertMenuItem)
	webserver.GET("/read", listMenuItems)
	webserver.PUT("/update", updateMenuItem)
	webserver.DELETE("/delete/:id", deleteMenuItem)
	webserver.POST("/seed", seedMenuItems)
}

// insertMenuItem creates a menu item
// @Summary create a menu item
// @Tags Menu
// @Param item body menuPayload true "Menu item"
// @Success 200 {object} domain.MenuItem
// @Router /insert [post]
func insertMenuItem(c echo.Context) error {
	var payload menuPayload
	if err := c.Bind(&payload); err != nil {
		return text(c, http.StatusBadRequest, "Invalid request body")
	}

	item := domain.MenuItem{
		FoodName:    payload.FoodName,
		Description: payload.Description,
		Price:       payload.Price,
		Image:       payload.Image,
	}
	if err := GetAppContext(c).Menus().Create(detached(c), &item); err != nil {
		zap.L().Error("insert menu item failed", zap.Error(err))
		return text(c, http.StatusInternalServerError, "Error inserting food")
	}
	return c.JSON(http.StatusOK, item)
}

// listMenuItems returns every menu item, no paging
// @Summary list menu items
// @Tags Menu
// @Success 200 {array} domain.MenuItem
// @Router /read [get]
func listMenuItems(c echo.Context) error {
	items, err := GetAppContext(c).Menus().List(detached(c))
	if err != nil {
		zap.L().Error("read menu items failed", zap.Error(err))
		return text(c, http.StatusInternalServerError, "Error reading food")
	}
	return c.JSON(http.StatusOK, items)
}

// updateMenuItem renames a menu item; other fields are left as stored
// @Summary rename a menu item
// @Tags Menu
// @Param rename body menuRenamePayload true "Item id and new name"
// @Success 200 {string} string "Food updated"
// @Router /update [put]
func updateMenuItem(c echo.Context) error {
	var payload menuRenamePayload
	if err := c.Bind(&payload); err != nil {
		return text(c, http.StatusBadRequest, "Invalid request body")
	}

	ctx := detached(c)
	id := strings.TrimSpace(payload.ID)
	menus := GetAppContext(c).Menus()
	item, err := menus.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return text(c, http.StatusNotFound, "Food not found")
	} else if err != nil {
		zap.L().Error("query menu item failed", zap.String("id", id), zap.Error(err))
		return text(c, http.StatusInternalServerError, "Error updating food")
	}

	item.FoodName = payload.NewFoodName
	if err := menus.Update(ctx, item); errors.Is(err, repository.ErrNotFound) {
		return text(c, http.StatusNotFound, "Food not found")
	} else if err != nil {
		zap.L().Error("update menu item failed", zap.String("id", item.ID), zap.Error(err))
		return text(c, http.StatusInternalServerError, "Error updating food")
	}
	return text(c, http.StatusOK, "Food updated")
}

// deleteMenuItem deletes a menu item
// @Summary delete a menu item
// @Tags Menu
// @Param id path string true "Menu item ID"
// @Success 200 {string} string "Food deleted"
// @Router /delete/{id} [delete]
func deleteMenuItem(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	err := GetAppContext(c).Menus().DeleteByID(detached(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		return text(c, http.StatusNotFound, "Food not found")
	} else if err != nil {
		zap.L().Error("delete menu item failed", zap.String("id", id), zap.Error(err))
		return text(c, http.StatusInternalServerError, "Error deleting food")
	}
	zap.L().Info("menu item deleted", zap.String("id", id))
	return text(c, http.StatusOK, "Food deleted")
}

// seedMenuItems appends the starter menu; calling it twice duplicates it
func seedMenuItems(c echo.Context) error {
	if _, err := GetAppContext(c).SeedMenu(detached(c)); err != nil {
		zap.L().Error("seed menu items failed", zap.Error(err))
		return text(c, http.StatusInternalServerError, "Error seeding food items")
	}
	return text(c, http.StatusOK, "Seeded menu items")
}
