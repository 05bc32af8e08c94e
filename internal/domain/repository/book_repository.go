package repository

import "github.com/jhoicas/biblioteca-api/internal/domain/entity"

// BookFilter filtros opcionales (AND) para listado de libros.
// Los términos se comparan con contains insensible a mayúsculas; la capa de
// aplicación los normaliza (acentos) antes de llegar aquí.
type BookFilter struct {
	Title  string
	Author string
	ISBN   string
}

// BookRepository define el puerto de persistencia para Book (DIP).
type BookRepository interface {
	Create(book *entity.Book) error
	GetByID(id string) (*entity.Book, error)
	GetByISBN(isbn string) (*entity.Book, error)
	Update(book *entity.Book) error
	// List devuelve la página y el total; cada fila incluye los agregados de
	// feedback aprobado (conteo y promedio de rating).
	List(filter BookFilter, limit, offset int) ([]*entity.BookWithStats, int, error)
	Delete(id string) error
}
