// Package results хранит историю гаданий на ромашке.
// models.go описывает результат одного гадания.
package results

import "time"

// Result — итог одного гадания: выпавший текст лепестка.
type Result struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Answer    string    `db:"answer"` // Текст выпавшего лепестка
	CreatedAt time.Time `db:"created_at"`
}
