package repository

import (
	"context"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

type documentTemplateRepository struct {
	adapterRepo
}

func NewDocumentTemplateRepository(adapter dataaccess.Adapter) domainRepo.DocumentTemplateRepository {
	return &documentTemplateRepository{adapterRepo{adapter: adapter, table: "document_templates"}}
}

func (r *documentTemplateRepository) FindAll(ctx context.Context, filters map[string]any, p domainRepo.Pagination) ([]entity.DocumentTemplate, domainRepo.Meta, error) {
	rows, meta, err := r.findAll(ctx, filters, p, "name", false)
	if err != nil {
		return nil, domainRepo.Meta{}, err
	}
	return rowsToTemplates(rows), meta, nil
}

func (r *documentTemplateRepository) FindByID(ctx context.Context, id int64) (*entity.DocumentTemplate, error) {
	row, err := r.findByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	tpl := rowToTemplate(row)
	return &tpl, nil
}

func (r *documentTemplateRepository) Create(ctx context.Context, template *entity.DocumentTemplate) error {
	row, err := r.insert(ctx, dataaccess.Row{
		"name":        template.Name,
		"description": template.Description,
		"body":        template.Body,
	})
	if err != nil {
		return err
	}
	*template = rowToTemplate(row)
	return nil
}

func (r *documentTemplateRepository) Update(ctx context.Context, id int64, values map[string]any) (*entity.DocumentTemplate, error) {
	row, err := r.update(ctx, id, values)
	if err != nil {
		return nil, err
	}
	tpl := rowToTemplate(row)
	return &tpl, nil
}

func (r *documentTemplateRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.delete(ctx, id)
}

func rowToTemplate(row dataaccess.Row) entity.DocumentTemplate {
	return entity.DocumentTemplate{
		ID:          row.Int64("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		Body:        row.String("body"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

func rowsToTemplates(rows []dataaccess.Row) []entity.DocumentTemplate {
	out := make([]entity.DocumentTemplate, len(rows))
	for i, row := range rows {
		out[i] = rowToTemplate(row)
	}
	return out
}
