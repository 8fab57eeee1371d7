package handlers

import (
	"github.com/Myseie/ShopInventory/internal/imagestore"
	"github.com/Myseie/ShopInventory/internal/loginguard"
	"github.com/Myseie/ShopInventory/internal/repo"
)

var (
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	images      *imagestore.Store
	guard       *loginguard.Guard
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetImageStore(s *imagestore.Store) {
	images = s
}

func SetLoginGuard(g *loginguard.Guard) {
	guard = g
}
