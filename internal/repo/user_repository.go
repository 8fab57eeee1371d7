package repo

import "github.com/Myseie/ShopInventory/internal/models"

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	CreateUser(u models.User) (models.User, error)
}
