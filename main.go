package main

import (
	"log"

	"marigold-suites/config"
	httpapi "marigold-suites/internal/api/http"
	"marigold-suites/internal/billing"
	"marigold-suites/internal/booking"
	"marigold-suites/internal/coordinator"
	"marigold-suites/internal/inventory"
	"marigold-suites/internal/ordering"
	"marigold-suites/internal/scheduling"
	"marigold-suites/internal/storage"
)

func main() {
	cfg := config.Load()

	store := inventory.NewStore(inventory.SeedRooms(), inventory.SeedMenu(), inventory.SeedTables())

	var cache ordering.MenuCache
	if client := config.MustInitRedis(cfg); client != nil {
		cache = storage.NewMenuCache(client, cfg.MenuCacheTTL)
		log.Printf("Menu cache enabled (redis %s)", cfg.RedisAddr)
	}

	// events stays a nil interface when no broker is configured; the
	// services treat nil as publishing disabled.
	var events booking.EventPublisher
	if writer := config.NewKafkaWriter(cfg); writer != nil {
		events = storage.NewKafkaPublisher(writer)
		defer writer.Close()
		log.Printf("Event publishing enabled (kafka %s, topic %s)", cfg.KafkaBroker, cfg.KafkaTopic)
	}

	rooms := booking.NewRoomService(store, events)
	tables := booking.NewTableService(store, events)
	orders := ordering.NewService(store, cache, events, tables)
	schedulingSvc := scheduling.NewService(store, inventory.SeedMealProgram(), cache, events)
	billingSvc := billing.NewService(billing.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, events, cfg.TaxRate, cfg.ServiceRate)
	coord := coordinator.New(rooms, orders, billingSvc)

	handler := httpapi.NewHandler(rooms, tables, orders, schedulingSvc, billingSvc, coord)
	router := httpapi.NewRouter(handler)

	log.Printf("Seeded %d rooms, %d menu items, %d tables",
		len(store.Rooms()), len(store.MenuItems()), len(store.Tables()))
	httpapi.StartServer(cfg.HTTPAddr, router)
}
