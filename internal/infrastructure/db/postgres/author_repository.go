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

var authorColumns = []string{
	"id", "name", "nationality", "birth_date", "biography", "created_at", "updated_at",
}

// AuthorRepository is the PostgreSQL-backed implementation of
// ports.AuthorRepository.
type AuthorRepository struct {
	db *sql.DB
}

func NewAuthorRepository(db *sql.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func scanAuthor(row sq.RowScanner) (*domain.Author, error) {
	var a domain.Author
	err := row.Scan(&a.ID, &a.Name, &a.Nationality, &a.BirthDate,
		&a.Biography, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorRepository) Create(ctx context.Context, author *domain.Author) (*domain.Author, error) {
	query, args, err := psql.Insert("authors").
		Columns("name", "nationality", "birth_date", "biography").
		Values(author.Name, author.Nationality, author.BirthDate, author.Biography).
		Suffix("RETURNING " + joinColumns(authorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert author query: %w", err)
	}

	return scanAuthor(r.db.QueryRowContext(ctx, query, args...))
}

func (r *AuthorRepository) FindByID(ctx context.Context, id int64) (*domain.Author, error) {
	query, args, err := psql.Select(authorColumns...).
		From("authors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select author query: %w", err)
	}

	author, err := scanAuthor(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (r *AuthorRepository) FindAll(ctx context.Context) ([]*domain.Author, error) {
	query, args, err := psql.Select(authorColumns...).
		From("authors").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select authors query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

func (r *AuthorRepository) Update(ctx context.Context, id int64, cmd ports.AuthorUpdate) (*domain.Author, error) {
	builder := psql.Update("authors").Set("updated_at", sq.Expr("NOW()"))

	if cmd.Name != nil {
		builder = builder.Set("name", *cmd.Name)
	}
	if cmd.Nationality != nil {
		builder = builder.Set("nationality", *cmd.Nationality)
	}
	if cmd.BirthDate != nil {
		builder = builder.Set("birth_date", *cmd.BirthDate)
	}
	if cmd.Biography != nil {
		builder = builder.Set("biography", *cmd.Biography)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(authorColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update author query: %w", err)
	}

	author, err := scanAuthor(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("authors").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete author query: %w", err)
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
		return domain.ErrAuthorNotFound
	}
	return nil
}
