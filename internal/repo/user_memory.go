package repo

import (
	"sync"
	"time"

	"github.com/Myseie/ShopInventory/internal/models"
)

// InMemoryUserRepository stores users in memory. Like the product
// repository it is also the live store without a database, so access is
// mutex-guarded.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: []models.User{},
	}
}

func (r *InMemoryUserRepository) GetByUsername(username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) CreateUser(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}

	u.ID = len(r.users) + 1
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users = append(r.users, u)
	return u, nil
}
