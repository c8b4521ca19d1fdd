package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// stubFeature is a minimal Feature for registry tests.
type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("LoadsEnabledSkipsDisabled", func(t *testing.T) {
		mgr := NewManager()
		enabled := &stubFeature{name: "sync", enabled: true}
		disabled := &stubFeature{name: "status", enabled: false}
		mgr.Register(enabled)
		mgr.Register(disabled)

		app := fiber.New()
		err := mgr.LoadAll(app)

		assert.NoError(t, err)
		assert.True(t, enabled.loaded)
		assert.False(t, disabled.loaded)
	})

	t.Run("LoadErrorAborts", func(t *testing.T) {
		mgr := NewManager()
		failing := &stubFeature{name: "sync", enabled: true, loadErr: errors.New("boom")}
		after := &stubFeature{name: "status", enabled: true}
		mgr.Register(failing)
		mgr.Register(after)

		app := fiber.New()
		err := mgr.LoadAll(app)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load feature sync")
		assert.False(t, after.loaded)
	})

	t.Run("EmptyRegistry", func(t *testing.T) {
		mgr := NewManager()
		app := fiber.New()
		assert.NoError(t, mgr.LoadAll(app))
	})
}
