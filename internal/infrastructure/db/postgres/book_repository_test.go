package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/biblioteca/library-system/internal/core/domain"
)

func newTestBookRepo(t *testing.T) (*BookRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewBookRepository(db), mock, db
}

func bookRows(b domain.Book) *sqlmock.Rows {
	return sqlmock.
		NewRows(bookColumns).
		AddRow(b.ID, b.Title, b.ISBN, b.PublicationYear, b.Genre,
			b.TotalCopies, b.AvailableCopies, b.AuthorID, b.CreatedAt, b.UpdatedAt)
}

func TestBookRepositoryCreateISBNTaken(t *testing.T) {
	repo, mock, db := newTestBookRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO books").
		WillReturnError(uniqueViolation("books_isbn_key"))

	_, err := repo.Create(context.Background(), &domain.Book{Title: "Dom Casmurro", ISBN: "9788535910663"})
	if !errors.Is(err, domain.ErrISBNTaken) {
		t.Fatalf("expected ErrISBNTaken, got %v", err)
	}
}

func TestBookRepositoryCreateEmptyISBNStoredAsNull(t *testing.T) {
	repo, mock, db := newTestBookRepo(t)
	defer db.Close()

	now := time.Now()
	want := domain.Book{ID: 1, Title: "Memórias Póstumas", TotalCopies: 2, AvailableCopies: 2, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO books").
		WithArgs(want.Title, nil, 0, "", 2, 2, nil).
		WillReturnRows(bookRows(want))

	created, err := repo.Create(context.Background(), &domain.Book{
		Title:           want.Title,
		TotalCopies:     2,
		AvailableCopies: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ISBN != "" {
		t.Errorf("expected empty isbn, got %q", created.ISBN)
	}
}

func TestBookRepositoryFindByIDNotFound(t *testing.T) {
	repo, mock, db := newTestBookRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookRepositoryAdjustAvailable(t *testing.T) {
	repo, mock, db := newTestBookRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE books").
		WithArgs(-1, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AdjustAvailable(context.Background(), 1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookRepositoryAdjustAvailableNoCopies(t *testing.T) {
	repo, mock, db := newTestBookRepo(t)
	defer db.Close()

	// The guarded UPDATE touches no rows, and the follow-up lookup shows the
	// book exists: the counter would have gone negative.
	mock.ExpectExec("UPDATE books").
		WithArgs(-1, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(int64(1)).
		WillReturnRows(bookRows(domain.Book{ID: 1, Title: "Quincas Borba", TotalCopies: 1, CreatedAt: now, UpdatedAt: now}))

	err := repo.AdjustAvailable(context.Background(), 1, -1)
	if !errors.Is(err, domain.ErrNoCopiesAvailable) {
		t.Fatalf("expected ErrNoCopiesAvailable, got %v", err)
	}
}

func TestBookRepositoryAdjustAvailableBookMissing(t *testing.T) {
	repo, mock, db := newTestBookRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE books").
		WithArgs(-1, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT (.+) FROM books").
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	err := repo.AdjustAvailable(context.Background(), 9, -1)
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
