package domain_test

import (
	"testing"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Role
	}{
		{"admin", domain.RoleAdmin},
		{"ADMIN", domain.RoleAdmin},
		{" editor ", domain.RoleEditor},
		{"viewer", domain.RoleViewer},
		{"", domain.RoleViewer},
		{"superuser", domain.RoleViewer},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseRole(tt.in))
		})
	}
}

func TestCanWrite(t *testing.T) {
	today := domain.NewDate(2024, 3, 10)
	yesterday := today.AddDays(-1)
	tomorrow := today.AddDays(1)

	tests := []struct {
		name string
		role domain.Role
		date domain.Date
		want bool
	}{
		{"viewer today", domain.RoleViewer, today, false},
		{"viewer yesterday", domain.RoleViewer, yesterday, false},
		{"editor today", domain.RoleEditor, today, true},
		{"editor yesterday", domain.RoleEditor, yesterday, false},
		{"editor tomorrow", domain.RoleEditor, tomorrow, false},
		{"admin today", domain.RoleAdmin, today, true},
		{"admin yesterday", domain.RoleAdmin, yesterday, true},
		{"admin far past", domain.RoleAdmin, today.AddDays(-400), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanWrite(tt.role, tt.date, today))
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	today := domain.NewDate(2024, 3, 10)
	past := today.AddDays(-3)

	assert.Equal(t, domain.Capabilities{CanRead: true}, domain.CapabilitiesFor(domain.RoleViewer, today, today))
	assert.Equal(t, domain.Capabilities{CanRead: true, CanWrite: true, CanToggle: true}, domain.CapabilitiesFor(domain.RoleEditor, today, today))
	assert.Equal(t, domain.Capabilities{CanRead: true}, domain.CapabilitiesFor(domain.RoleEditor, past, today))
	assert.Equal(t, domain.Capabilities{CanRead: true, CanWrite: true, CanToggle: true}, domain.CapabilitiesFor(domain.RoleAdmin, past, today))
}
