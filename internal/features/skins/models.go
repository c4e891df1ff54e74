// Package skins управляет каталогом скинов ромашки и их покупкой.
// models.go описывает запись каталога.
package skins

import "time"

// Skin — запись каталога скинов.
// Каталог создаётся один раз при старте и дальше не меняется.
type Skin struct {
	ID        int64     `db:"id"`         // ID скина
	Name      string    `db:"name"`       // Название («Фиолетовая ромашка»)
	Price     int64     `db:"price"`      // Цена в листиках (>= 0)
	Color     string    `db:"color"`      // Цвет лепестков (hex)
	IsDefault bool      `db:"is_default"` // Дефолтный скин (бесплатный, у всех)
	CreatedAt time.Time `db:"created_at"`
}

// SkinWithOwned — скин вместе с флагом владения для конкретного игрока.
type SkinWithOwned struct {
	Skin
	Owned bool `json:"owned"`
}

// DefaultCatalog — стартовый набор скинов.
// Применяется один раз, если каталог пуст.
func DefaultCatalog() []Skin {
	return []Skin{
		{Name: "Классическая ромашка", Price: 0, Color: "#FFFFFF", IsDefault: true},
		{Name: "Фиолетовая ромашка", Price: 23, Color: "#9C27B0"},
		{Name: "Синяя ромашка", Price: 45, Color: "#2196F3"},
		{Name: "Розовая ромашка", Price: 37, Color: "#E91E63"},
		{Name: "Оранжевая ромашка", Price: 50, Color: "#FF9800"},
	}
}
