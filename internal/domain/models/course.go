package models

// Course is the catalog entry consumed by the engine. Catalog CRUD lives
// outside; the engine only reads price, teacher and existence.
type Course struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	TeacherID       int64  `json:"teacherId"`
	PricePerSession int64  `json:"pricePerSession"`
	Status          string `json:"status"`
}
