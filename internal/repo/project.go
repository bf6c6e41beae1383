package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

type ProjectRepo struct {
	s store[model.Project]
}

func NewProjectRepo(db *mongo.Database) *ProjectRepo {
	return &ProjectRepo{s: store[model.Project]{coll: db.Collection(constants.CollectionProjects)}}
}

func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) ([]model.Project, error) {
	return r.s.find(ctx, BuildProjectFilter(f), options.Find().SetSort(newestFirst()))
}

func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	id, err := r.s.insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}
