package handlers

import (
	"log"

	"github.com/tavola-dev/tavola/db"
	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/services"
)

var (
	// UploadDir is where dish images are written; served under /uploads.
	UploadDir = "uploads"

	StrictOrderStatus = true

	Notifier *services.Notifier
)

func userService() *services.UserService {
	return services.NewUserService(db.Store)
}

func catalogService() *services.CatalogService {
	return services.NewCatalogService(db.Store)
}

func cartService() *services.CartService {
	return services.NewCartService(db.Store)
}

func orderService() *services.OrderService {
	return services.NewOrderService(db.Store, StrictOrderStatus)
}

// publishOrder pushes an order change to websocket subscribers and, in the
// background, to the configured webhooks.
func publishOrder(order models.Order, previous string) {
	BroadcastOrderUpdate(order)

	if !Notifier.Enabled() {
		return
	}

	go func() {
		var err error

		if previous == "" {
			err = Notifier.SendOrderCreated(order)
		} else {
			err = Notifier.SendOrderStatusChanged(order, previous)
		}

		if err != nil {
			log.Printf("Failed to notify order %s: %v", order.ID, err)
		}
	}()
}
