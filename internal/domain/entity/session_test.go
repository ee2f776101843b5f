package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
)

func TestSession_ClearConservaPreferencias(t *testing.T) {
	s := entity.NewSession(time.Now())
	assert.False(t, s.IsAuthenticated())

	s.SetTokens("access", "refresh")
	s.SetUser(&entity.User{ID: 1, Username: "ana"})
	s.SetPreferences(entity.Preferences{FontSize: entity.FontLarge, HighContrast: true})
	assert.True(t, s.IsAuthenticated())

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.RefreshToken())
	assert.Nil(t, s.User())
	assert.Equal(t, entity.FontLarge, s.Preferences().FontSize)
}

func TestUser_Role(t *testing.T) {
	var nilUser *entity.User
	assert.Equal(t, "", nilUser.Role())
	assert.Equal(t, entity.RoleMaster, (&entity.User{IsMaster: true}).Role())
	assert.Equal(t, entity.RoleMaster, (&entity.User{IsSuperuser: true, IsStaff: true}).Role())
	assert.Equal(t, entity.RoleStaff, (&entity.User{IsStaff: true}).Role())
	assert.Equal(t, entity.RoleOperator, (&entity.User{}).Role())

	u := &entity.User{Permissions: []string{"view_item"}}
	assert.True(t, u.HasPermission("view_item"))
	assert.False(t, u.HasPermission("delete_item"))
	assert.True(t, (&entity.User{IsMaster: true}).HasPermission("delete_item"))
}

func TestPreferences_Derivados(t *testing.T) {
	p := entity.DefaultPreferences()
	assert.Equal(t, 1.0, p.FontSizeMultiplier())
	assert.Empty(t, p.Classes())
	assert.Equal(t, "1rem", p.CSSVariables()["--accessibility-font-size"])

	p = entity.Preferences{FontSize: entity.FontExtraLarge, HighContrast: true, ReducedMotion: true}
	assert.Equal(t, 1.25, p.FontSizeMultiplier())
	assert.Equal(t, []string{"font-size-extra-large", "high-contrast", "reduced-motion"}, p.Classes())
	assert.Equal(t, "1.25rem", p.CSSVariables()["--accessibility-font-size"])

	assert.False(t, entity.ValidFontSize("huge"))
	assert.Equal(t, 1.0, entity.Preferences{FontSize: "huge"}.FontSizeMultiplier())
}
