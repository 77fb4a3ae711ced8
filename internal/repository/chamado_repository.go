package repository

import (
	"context"
	"strconv"
	"sync"

	"github.com/spec-kit/chamados/internal/domain"
	apperrors "github.com/spec-kit/chamados/pkg/util/errorutil"
)

// ChamadoRepository owns the chamado collection for the lifetime of the process.
type ChamadoRepository interface {
	// Snapshot returns a copy of every chamado, most recently created first.
	Snapshot(ctx context.Context) ([]domain.Chamado, error)
	GetByID(ctx context.Context, id string) (*domain.Chamado, error)
	// Create assigns the next id to chamado and prepends it in one step.
	Create(ctx context.Context, chamado *domain.Chamado) error
	// Prepend inserts a chamado that already carries an id.
	Prepend(ctx context.Context, chamado domain.Chamado) error
	Count(ctx context.Context) (int, error)
}

type memoryChamadoRepository struct {
	mu       sync.RWMutex
	chamados []domain.Chamado
	ids      map[string]struct{}
	maxID    int64
}

// NewMemoryChamadoRepository instantiates the store with its initial contents.
// The initial slice is copied; later changes to it are not observed.
func NewMemoryChamadoRepository(initial []domain.Chamado) ChamadoRepository {
	r := &memoryChamadoRepository{
		chamados: make([]domain.Chamado, 0, len(initial)),
		ids:      make(map[string]struct{}, len(initial)),
	}
	for i := range initial {
		r.chamados = append(r.chamados, initial[i].Clone())
		r.track(initial[i].ID)
	}
	return r
}

func (r *memoryChamadoRepository) Snapshot(ctx context.Context) ([]domain.Chamado, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Chamado, 0, len(r.chamados))
	for i := range r.chamados {
		out = append(out, r.chamados[i].Clone())
	}
	return out, nil
}

func (r *memoryChamadoRepository) GetByID(ctx context.Context, id string) (*domain.Chamado, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.ids[id]; !ok {
		return nil, apperrors.NewNotFound("chamado", map[string]any{"id": id})
	}
	for i := range r.chamados {
		if r.chamados[i].ID == id {
			c := r.chamados[i].Clone()
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFound("chamado", map[string]any{"id": id})
}

func (r *memoryChamadoRepository) Create(ctx context.Context, chamado *domain.Chamado) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// An empty store starts numbering at 1.
	chamado.ID = strconv.FormatInt(r.maxID+1, 10)
	r.prepend(chamado.Clone())
	return nil
}

func (r *memoryChamadoRepository) Prepend(ctx context.Context, chamado domain.Chamado) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.ids[chamado.ID]; dup {
		return apperrors.NewConflict("chamado id already exists", map[string]any{"id": chamado.ID})
	}
	r.prepend(chamado.Clone())
	return nil
}

func (r *memoryChamadoRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chamados), nil
}

// prepend must be called with the write lock held.
func (r *memoryChamadoRepository) prepend(c domain.Chamado) {
	r.chamados = append(r.chamados, domain.Chamado{})
	copy(r.chamados[1:], r.chamados)
	r.chamados[0] = c
	r.track(c.ID)
}

func (r *memoryChamadoRepository) track(id string) {
	r.ids[id] = struct{}{}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > r.maxID {
		r.maxID = n
	}
}
