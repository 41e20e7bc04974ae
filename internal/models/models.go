package models

import (
	"time"
)

const (
	RoleMember = 0
	RoleAdmin  = 1
)

// DefaultProgress is the status every new order starts with.
const DefaultProgress = "已收到訂單"

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Account  string `gorm:"size:20;unique;not null"  json:"account"`
	Password string `gorm:"not null"                 json:"-"`
	Email    string `gorm:"unique;not null"          json:"email"`
	Role     int    `gorm:"not null;default:0"       json:"role"`
	Image    string `json:"image"`
	Address  string `json:"address"`
}

// AuthToken is one entry of a user's active-token list. Logout deletes
// the row, which invalidates that credential without touching the
// user's other sessions.
type AuthToken struct {
	ID     uint   `gorm:"primaryKey"      json:"id"`
	UserID uint   `gorm:"index;not null"  json:"user_id"`
	Token  string `gorm:"unique;not null" json:"token"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null;check:price>=0"  json:"price"`
	Sell        bool    `json:"sell"`
	Brand       string  `json:"brand"`
	Cate        string  `json:"cate"`
	Description string  `json:"description"`
	Detail      string  `json:"detail"`
	Image       string  `json:"image"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`
	ProductID uint `gorm:"not null"       json:"product_id"`
	Amount    uint `gorm:"not null"       json:"amount"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type FavoriteItem struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`
	ProductID uint `gorm:"not null"       json:"product_id"`
	Amount    uint `json:"amount"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Order struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"index;not null"           json:"user_id"`
	Date     time.Time `gorm:"not null"                 json:"date"`
	Address  string    `gorm:"not null"                 json:"address"`
	Progress string    `gorm:"default:'已收到訂單'"      json:"progress"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"not null"       json:"product_id"`
	Amount    uint `gorm:"not null"       json:"amount"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Home struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Link        string    `json:"link"`
	Date        time.Time `json:"date"`
}
