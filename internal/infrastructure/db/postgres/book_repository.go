package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

var bookColumns = []string{
	"id", "title", "isbn", "publication_year", "genre",
	"total_copies", "available_copies", "author_id", "created_at", "updated_at",
}

// BookRepository is the PostgreSQL-backed implementation of
// ports.BookRepository. ISBN uniqueness is enforced by the unique index on
// the books table; AdjustAvailable guards the copy counter inside the UPDATE
// itself so concurrent checkouts cannot drive it negative.
type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

func scanBook(row sq.RowScanner) (*domain.Book, error) {
	var b domain.Book
	var isbn sql.NullString
	err := row.Scan(&b.ID, &b.Title, &isbn, &b.PublicationYear, &b.Genre,
		&b.TotalCopies, &b.AvailableCopies, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.ISBN = isbn.String
	return &b, nil
}

// nullISBN stores empty ISBNs as NULL so the unique index on isbn does not
// collide on books without one.
func nullISBN(isbn string) any {
	if isbn == "" {
		return nil
	}
	return isbn
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	query, args, err := psql.Insert("books").
		Columns("title", "isbn", "publication_year", "genre", "total_copies", "available_copies", "author_id").
		Values(book.Title, nullISBN(book.ISBN), book.PublicationYear, book.Genre,
			book.TotalCopies, book.AvailableCopies, book.AuthorID).
		Suffix("RETURNING " + joinColumns(bookColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert book query: %w", err)
	}

	created, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (*domain.Book, error) {
	query, args, err := psql.Select(bookColumns...).
		From("books").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select book query: %w", err)
	}

	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*domain.Book, error) {
	query, args, err := psql.Select(bookColumns...).
		From("books").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select books query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *BookRepository) Update(ctx context.Context, id int64, cmd ports.BookUpdate) (*domain.Book, error) {
	builder := psql.Update("books").Set("updated_at", sq.Expr("NOW()"))

	if cmd.Title != nil {
		builder = builder.Set("title", *cmd.Title)
	}
	if cmd.ISBN != nil {
		builder = builder.Set("isbn", nullISBN(*cmd.ISBN))
	}
	if cmd.PublicationYear != nil {
		builder = builder.Set("publication_year", *cmd.PublicationYear)
	}
	if cmd.Genre != nil {
		builder = builder.Set("genre", *cmd.Genre)
	}
	if cmd.TotalCopies != nil {
		builder = builder.Set("total_copies", *cmd.TotalCopies)
	}
	if cmd.AvailableCopies != nil {
		builder = builder.Set("available_copies", *cmd.AvailableCopies)
	}
	if cmd.AuthorID != nil {
		builder = builder.Set("author_id", *cmd.AuthorID)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(bookColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update book query: %w", err)
	}

	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookNotFound
	}
	if err != nil {
		return nil, translateError(err)
	}
	return book, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("books").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete book query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// AdjustAvailable applies a relative change to available_copies. The WHERE
// clause keeps the counter inside [0, total_copies] under concurrency; when
// no row qualifies the failure is disambiguated into not-found vs no-copies.
func (r *BookRepository) AdjustAvailable(ctx context.Context, id int64, delta int) error {
	const query = `UPDATE books
		SET available_copies = available_copies + $1, updated_at = NOW()
		WHERE id = $2
		  AND available_copies + $1 >= 0
		  AND available_copies + $1 <= total_copies`

	res, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrNoCopiesAvailable
	}
	return nil
}
