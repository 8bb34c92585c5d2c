package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestionusuarios/admin-console/internal/core/domain"
	"github.com/gestionusuarios/admin-console/internal/core/ports"
)

// DefaultDashboardCap bounds how many usuarios and perfiles the dashboard
// pulls for its aggregate view.
const DefaultDashboardCap = 100

// recentPreviewSize is how many usuarios the recency preview shows.
const recentPreviewSize = 5

// EstadoSlice is one slice of the activos/inactivos chart.
type EstadoSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// PerfilBar is one bar of the perfiles-per-usuario chart.
type PerfilBar struct {
	Name     string `json:"name"`
	Perfiles int    `json:"perfiles"`
}

// DashboardStats is the derived aggregate view. Percentages are 0 when the
// usuario total is 0; never NaN.
type DashboardStats struct {
	TotalUsuarios       int64            `json:"totalUsuarios"`
	TotalPerfiles       int64            `json:"totalPerfiles"`
	UsuariosActivos     int              `json:"usuariosActivos"`
	UsuariosInactivos   int              `json:"usuariosInactivos"`
	PorcentajeActivos   float64          `json:"porcentajeActivos"`
	PorcentajeInactivos float64          `json:"porcentajeInactivos"`
	PorEstado           []EstadoSlice    `json:"porEstado"`
	PorUsuario          []PerfilBar      `json:"porUsuario"`
	Recientes           []domain.Usuario `json:"recientes"`
}

// Dashboard derives summary counts and chart-ready series from the two list
// resources. Pure derivation: it never mutates anything.
type Dashboard struct {
	usuarios ports.UsuarioAPI
	perfiles ports.PerfilAPI
	cap      int
	log      zerolog.Logger
}

func NewDashboard(usuarios ports.UsuarioAPI, perfiles ports.PerfilAPI, cap int, log zerolog.Logger) *Dashboard {
	if cap <= 0 {
		cap = DefaultDashboardCap
	}
	return &Dashboard{usuarios: usuarios, perfiles: perfiles, cap: cap, log: log}
}

// Snapshot issues the two capped listing fetches and computes the stats.
func (d *Dashboard) Snapshot(ctx context.Context) (*DashboardStats, error) {
	usuariosPage, err := d.usuarios.List(ctx, 0, d.cap)
	if err != nil {
		return nil, err
	}
	perfilesPage, err := d.perfiles.List(ctx, 0, d.cap)
	if err != nil {
		return nil, err
	}

	activos := 0
	for _, u := range usuariosPage.Content {
		if u.Activo {
			activos++
		}
	}
	total := usuariosPage.TotalElements
	inactivos := int(total) - activos
	if inactivos < 0 {
		inactivos = 0
	}

	var pctActivos, pctInactivos float64
	if total > 0 {
		pctActivos = float64(activos) / float64(total) * 100
		pctInactivos = float64(inactivos) / float64(total) * 100
	}

	preview := usuariosPage.Content
	if len(preview) > recentPreviewSize {
		preview = preview[:recentPreviewSize]
	}

	bars := make([]PerfilBar, 0, len(preview))
	for _, u := range preview {
		bars = append(bars, PerfilBar{Name: u.Username, Perfiles: len(u.Perfiles)})
	}

	return &DashboardStats{
		TotalUsuarios:       total,
		TotalPerfiles:       perfilesPage.TotalElements,
		UsuariosActivos:     activos,
		UsuariosInactivos:   inactivos,
		PorcentajeActivos:   pctActivos,
		PorcentajeInactivos: pctInactivos,
		PorEstado: []EstadoSlice{
			{Name: "Activos", Value: activos, Color: "#10b981"},
			{Name: "Inactivos", Value: inactivos, Color: "#ef4444"},
		},
		PorUsuario: bars,
		Recientes:  append([]domain.Usuario(nil), preview...),
	}, nil
}
