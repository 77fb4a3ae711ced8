package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/chamados/internal/domain"
	apperrors "github.com/spec-kit/chamados/pkg/util/errorutil"
)

func chamado(id, titulo string) domain.Chamado {
	return domain.Chamado{
		ID:         id,
		Titulo:     titulo,
		Status:     domain.StatusOpen,
		Prioridade: domain.PrioridadeLow,
		Area:       domain.AreaWater,
	}
}

func TestCreate_AssignsMaxPlusOneAndPrepends(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryChamadoRepository([]domain.Chamado{chamado("1", "primeiro")})

	c := chamado("", "novo")
	if err := repo.Create(ctx, &c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.ID != "2" {
		t.Fatalf("expected id 2, got %s", c.ID)
	}

	all, _ := repo.Snapshot(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 chamados, got %d", len(all))
	}
	if all[0].ID != "2" || all[1].ID != "1" {
		t.Errorf("expected most recent first, got %s, %s", all[0].ID, all[1].ID)
	}
}

func TestCreate_UsesNumericMaximumNotLastID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryChamadoRepository([]domain.Chamado{
		chamado("1005", "a"),
		chamado("999", "b"),
		chamado("legacy-7", "c"),
	})

	c := chamado("", "novo")
	_ = repo.Create(ctx, &c)
	if c.ID != "1006" {
		t.Fatalf("expected id 1006, got %s", c.ID)
	}
}

func TestCreate_EmptyStoreStartsAtOne(t *testing.T) {
	repo := NewMemoryChamadoRepository(nil)
	c := chamado("", "novo")
	_ = repo.Create(context.Background(), &c)
	if c.ID != "1" {
		t.Fatalf("expected id 1, got %s", c.ID)
	}
}

func TestCreate_ConcurrentCallsGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryChamadoRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := chamado("", "paralelo")
			_ = repo.Create(ctx, &c)
		}()
	}
	wg.Wait()

	all, _ := repo.Snapshot(ctx)
	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
	if len(seen) != 50 {
		t.Fatalf("expected 50 chamados, got %d", len(seen))
	}
}

func TestPrepend_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryChamadoRepository([]domain.Chamado{chamado("1", "a")})

	err := repo.Prepend(ctx, chamado("1", "b"))
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	if err := repo.Prepend(ctx, chamado("10", "c")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	next := chamado("", "d")
	_ = repo.Create(ctx, &next)
	if next.ID != "11" {
		t.Errorf("expected prepend to advance the id counter, got %s", next.ID)
	}
}

func TestSnapshot_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	name := "Carla"
	c := chamado("1", "a")
	c.Responsavel = &name
	repo := NewMemoryChamadoRepository([]domain.Chamado{c})

	snap, _ := repo.Snapshot(ctx)
	snap[0].Titulo = "mudado"
	*snap[0].Responsavel = "Outra"

	again, _ := repo.Snapshot(ctx)
	if again[0].Titulo != "a" || *again[0].Responsavel != "Carla" {
		t.Fatalf("store was modified through a snapshot: %+v", again[0])
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryChamadoRepository([]domain.Chamado{chamado("1", "a"), chamado("2", "b")})

	got, err := repo.GetByID(ctx, "2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Titulo != "b" {
		t.Errorf("expected titulo b, got %s", got.Titulo)
	}

	if _, err := repo.GetByID(ctx, "3"); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	n, _ := repo.Count(ctx)
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}
