package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/pkg/constants"
)

func TestFromCentralConfig(t *testing.T) {
	cfg := FromCentralConfig(config.DatabaseConfig{URI: "mongodb://db:27017"})

	assert.Equal(t, "mongodb://db:27017", cfg.URI)
	assert.Equal(t, "realty", cfg.Name)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout())
	assert.EqualValues(t, 50, cfg.MaxPoolSize)
}

func TestNew_MissingURI(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.ErrorIs(t, err, ErrMissingURI)
}

func TestIndexes(t *testing.T) {
	byCollection := map[string]IndexSpec{}
	for _, s := range Indexes() {
		byCollection[s.Collection] = s
	}

	for _, name := range []string{constants.CollectionProducts, constants.CollectionProjects} {
		spec, ok := byCollection[name]
		require.True(t, ok, name)
		require.Len(t, spec.Models, 2)
		assert.True(t, *spec.Models[1].Options.Unique, name)
	}

	admins := byCollection[constants.CollectionAdmins]
	require.Len(t, admins.Models, 1)
	assert.Equal(t, "username_unique", *admins.Models[0].Options.Name)
}
