package noop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"seogen/internal/domain"
	"seogen/internal/repository/noop"
)

func TestNoopStore(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := noop.NewStore[domain.School](domain.VerticalEcoles, zap.New(core))
	ctx := context.Background()

	records := store.FetchAll(ctx)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.False(t, store.Save(ctx, domain.School{SchoolBasic: domain.SchoolBasic{ID: "eco-1-aaaaa"}}))

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "eco-1-aaaaa", logs.All()[1].ContextMap()["id"])
}

func TestNoopProber(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	assert.False(t, noop.NewProber(zap.New(core)).TestConnection(context.Background()))
	assert.Equal(t, 1, logs.Len())
}
