// Package memory is an in-process implementation of the repository
// interfaces, used as a test double for the Postgres repositories.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

var (
	_ repository.CategoryRepository   = (*CategoryRepository)(nil)
	_ repository.ProductRepository    = (*ProductRepository)(nil)
	_ repository.TagRepository        = (*TagRepository)(nil)
	_ repository.ProductTagRepository = (*ProductTagRepository)(nil)
	_ repository.OutboxMsgRepository  = (*OutboxMsgRepository)(nil)
	_ db.Transactor                   = (*Store)(nil)
)

// Store holds every table. Transactions run one at a time and a failed one is
// rolled back by restoring the tables it started from.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	categories  map[int64]model.Category
	products    map[int64]model.Product
	tags        map[int64]model.Tag
	productTags map[int64]model.ProductTag
	outboxMsgs  []*outboxMsg
	seq         int64

	failErr error
}

func NewStore() *Store {
	return &Store{
		categories:  map[int64]model.Category{},
		products:    map[int64]model.Product{},
		tags:        map[int64]model.Tag{},
		productTags: map[int64]model.ProductTag{},
	}
}

// FailWith makes every subsequent operation return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *Store) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	if err := s.failErr; err != nil {
		s.mu.Unlock()
		return err
	}
	snap := s.snapshot()
	s.mu.Unlock()

	if err := txFunc(nil); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

type tables struct {
	categories  map[int64]model.Category
	products    map[int64]model.Product
	tags        map[int64]model.Tag
	productTags map[int64]model.ProductTag
	outboxMsgs  []outboxMsg
}

// snapshot must be called with the store locked.
func (s *Store) snapshot() tables {
	msgs := make([]outboxMsg, 0, len(s.outboxMsgs))
	for _, m := range s.outboxMsgs {
		msgs = append(msgs, *m)
	}
	return tables{
		categories:  maps.Clone(s.categories),
		products:    maps.Clone(s.products),
		tags:        maps.Clone(s.tags),
		productTags: maps.Clone(s.productTags),
		outboxMsgs:  msgs,
	}
}

// restore must be called with the store locked. Ids handed out inside the
// failed transaction are not reused, as with a Postgres sequence.
func (s *Store) restore(t tables) {
	s.categories = t.categories
	s.products = t.products
	s.tags = t.tags
	s.productTags = t.productTags
	s.outboxMsgs = make([]*outboxMsg, 0, len(t.outboxMsgs))
	for _, m := range t.outboxMsgs {
		s.outboxMsgs = append(s.outboxMsgs, &m)
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// ProductTags returns a snapshot of the join table ordered by id.
func (s *Store) ProductTags() []model.ProductTag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.productTags, func(pt model.ProductTag) int64 { return pt.ID })
}

// Products returns a snapshot of the plain product rows ordered by id.
func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.products, func(p model.Product) int64 { return p.ID })
}

func sortedByID[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	out = slices.AppendSeq(out, maps.Values(m))
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

// Repositories returns the repository set backed by this store.
func (s *Store) Repositories() Repositories {
	return Repositories{
		Categories:  &CategoryRepository{s: s},
		Products:    &ProductRepository{s: s},
		Tags:        &TagRepository{s: s},
		ProductTags: &ProductTagRepository{s: s},
		OutboxMsgs:  &OutboxMsgRepository{s: s},
	}
}

type Repositories struct {
	Categories  *CategoryRepository
	Products    *ProductRepository
	Tags        *TagRepository
	ProductTags *ProductTagRepository
	OutboxMsgs  *OutboxMsgRepository
}

// plainProduct strips associations from a stored product.
func plainProduct(p model.Product) model.Product {
	p.Category = nil
	p.Tags = nil
	return p
}
