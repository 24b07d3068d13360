package tests

// Stubs en memoria para los tests unitarios de los servicios. Los métodos Tx
// reciben tx=nil (los repos devuelven nil de DB()), así que runTx ejecuta el
// cuerpo directamente sin transacción real.

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"purobeach/internal/dto"
	"purobeach/internal/model"
	"purobeach/internal/repository"
	"purobeach/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func dia(s string) time.Time {
	f, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return f
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("uuid inválido %q: %v", s, err)
	}
	return id
}

func mustUUIDString() string { return uuid.NewString() }

func contiene(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ── Stub: estados ────────────────────────────────────────────────────────────

type stubEstadoRepo struct {
	estados           map[uuid.UUID]*model.EstadoReserva
	reservasPorEstado map[uuid.UUID]int64
}

var _ repository.EstadoRepository = (*stubEstadoRepo)(nil)

func newStubEstadoRepo() *stubEstadoRepo {
	return &stubEstadoRepo{
		estados:           map[uuid.UUID]*model.EstadoReserva{},
		reservasPorEstado: map[uuid.UUID]int64{},
	}
}

func (s *stubEstadoRepo) agregar(e *model.EstadoReserva) *model.EstadoReserva {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.estados[e.ID] = e
	return e
}

// sembrarSistema carga los seis estados de sistema con las mismas prioridades
// y banderas que cmd/seed.
func (s *stubEstadoRepo) sembrarSistema() {
	seed := []model.EstadoReserva{
		{Codigo: model.EstadoCancelada, Nombre: "Cancelada", Prioridad: 90, LiberaDisponibilidad: true, CreaIncidencia: true},
		{Codigo: model.EstadoNoShow, Nombre: "No show", Prioridad: 85, LiberaDisponibilidad: true, CreaIncidencia: true},
		{Codigo: model.EstadoLiberada, Nombre: "Liberada", Prioridad: 80, LiberaDisponibilidad: true},
		{Codigo: model.EstadoCompletada, Nombre: "Completada", Prioridad: 70},
		{Codigo: model.EstadoSentada, Nombre: "Sentada", Prioridad: 60},
		{Codigo: model.EstadoConfirmada, Nombre: "Confirmada", Prioridad: 50, EsDefault: true},
	}
	for i := range seed {
		seed[i].EsSistema = true
		seed[i].Activo = true
		e := seed[i]
		s.agregar(&e)
	}
}

func (s *stubEstadoRepo) porCodigo(codigo string) *model.EstadoReserva {
	for _, e := range s.estados {
		if e.Codigo == codigo {
			return e
		}
	}
	return nil
}

func (s *stubEstadoRepo) Create(_ context.Context, e *model.EstadoReserva) error {
	s.agregar(e)
	return nil
}

func (s *stubEstadoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EstadoReserva, error) {
	e, ok := s.estados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *stubEstadoRepo) FindByCodigo(_ context.Context, codigo string) (*model.EstadoReserva, error) {
	if e := s.porCodigo(codigo); e != nil {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubEstadoRepo) FindDefault(_ context.Context) (*model.EstadoReserva, error) {
	for _, e := range s.estados {
		if e.EsDefault && e.Activo {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubEstadoRepo) List(_ context.Context) ([]model.EstadoReserva, error) {
	out := make([]model.EstadoReserva, 0, len(s.estados))
	for _, e := range s.estados {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prioridad > out[j].Prioridad })
	return out, nil
}

func (s *stubEstadoRepo) Update(_ context.Context, e *model.EstadoReserva) error {
	s.estados[e.ID] = e
	return nil
}

func (s *stubEstadoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.estados, id)
	return nil
}

func (s *stubEstadoRepo) IDsLiberadores(_ context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id, e := range s.estados {
		if e.LiberaDisponibilidad && e.Activo {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *stubEstadoRepo) CountReservas(_ context.Context, id uuid.UUID) (int64, error) {
	return s.reservasPorEstado[id], nil
}

// ── Stub: reservas ───────────────────────────────────────────────────────────

type stubReservaRepo struct {
	estados   *stubEstadoRepo
	asigs     *stubAsignacionRepo
	clientes  *stubClienteRepo
	reservas  map[uuid.UUID]*model.Reserva
	historial []*model.HistorialEstado
}

var _ repository.ReservaRepository = (*stubReservaRepo)(nil)

func newStubReservaRepo(estados *stubEstadoRepo) *stubReservaRepo {
	return &stubReservaRepo{estados: estados, reservas: map[uuid.UUID]*model.Reserva{}}
}

func (s *stubReservaRepo) cargada(r *model.Reserva) model.Reserva {
	c := *r
	if s.estados != nil {
		c.Estado = s.estados.estados[c.EstadoID]
	}
	if s.clientes != nil {
		c.Cliente = s.clientes.clientes[c.ClienteID]
	}
	c.Historial = nil
	for _, h := range s.historial {
		if h.ReservaID != r.ID {
			continue
		}
		fila := *h
		if s.estados != nil {
			fila.Estado = s.estados.estados[fila.EstadoID]
		}
		c.Historial = append(c.Historial, fila)
	}
	c.Hijas = nil
	for _, otra := range s.reservas {
		if otra.PadreID != nil && *otra.PadreID == r.ID {
			c.Hijas = append(c.Hijas, *otra)
		}
	}
	sort.Slice(c.Hijas, func(i, j int) bool { return c.Hijas[i].FechaInicio.Before(c.Hijas[j].FechaInicio) })
	c.Asignaciones = nil
	if s.asigs != nil {
		c.Asignaciones, _ = s.asigs.FindByReserva(context.Background(), r.ID)
	}
	return c
}

func (s *stubReservaRepo) Create(_ context.Context, _ *gorm.DB, res *model.Reserva) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	res.CreatedAt = time.Now()
	guardada := *res
	s.reservas[res.ID] = &guardada
	return nil
}

func (s *stubReservaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reserva, error) {
	r, ok := s.reservas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := s.cargada(r)
	return &c, nil
}

func (s *stubReservaRepo) FindGrupo(_ context.Context, id uuid.UUID) ([]model.Reserva, error) {
	r, ok := s.reservas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	raiz := r
	if r.PadreID != nil {
		raiz = s.reservas[*r.PadreID]
	}
	out := []model.Reserva{s.cargada(raiz)}
	var hijas []model.Reserva
	for _, otra := range s.reservas {
		if otra.PadreID != nil && *otra.PadreID == raiz.ID {
			hijas = append(hijas, s.cargada(otra))
		}
	}
	sort.Slice(hijas, func(i, j int) bool { return hijas[i].FechaInicio.Before(hijas[j].FechaInicio) })
	return append(out, hijas...), nil
}

func (s *stubReservaRepo) List(_ context.Context, filter dto.ReservaFilter) ([]model.Reserva, int64, error) {
	var out []model.Reserva
	for _, r := range s.reservas {
		if filter.ClienteID != "" && r.ClienteID.String() != filter.ClienteID {
			continue
		}
		out = append(out, s.cargada(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaInicio.Before(out[j].FechaInicio) })
	return out, int64(len(out)), nil
}

func (s *stubReservaRepo) guardar(res *model.Reserva) {
	c := *res
	c.Estado = nil
	c.Cliente = nil
	c.Hijas = nil
	c.Historial = nil
	c.Asignaciones = nil
	s.reservas[res.ID] = &c
}

func (s *stubReservaRepo) Update(_ context.Context, res *model.Reserva) error {
	s.guardar(res)
	return nil
}

func (s *stubReservaRepo) UpdateTx(_ *gorm.DB, res *model.Reserva) error {
	s.guardar(res)
	return nil
}

func (s *stubReservaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estadoID uuid.UUID) error {
	r, ok := s.reservas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.EstadoID = estadoID
	return nil
}

func (s *stubReservaRepo) SetBloqueoMobiliario(_ context.Context, id uuid.UUID, bloqueado bool) error {
	r, ok := s.reservas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.MobiliarioBloqueado = bloqueado
	return nil
}

func (s *stubReservaRepo) CreateHistorialTx(_ *gorm.DB, h *model.HistorialEstado) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	fila := *h
	s.historial = append(s.historial, &fila)
	return nil
}

func (s *stubReservaRepo) activos(reservaID uuid.UUID) []model.HistorialEstado {
	var out []model.HistorialEstado
	for _, h := range s.historial {
		if h.ReservaID != reservaID || !h.Activo {
			continue
		}
		fila := *h
		if s.estados != nil {
			fila.Estado = s.estados.estados[fila.EstadoID]
		}
		out = append(out, fila)
	}
	return out
}

func (s *stubReservaRepo) HistorialActivo(_ context.Context, reservaID uuid.UUID) ([]model.HistorialEstado, error) {
	return s.activos(reservaID), nil
}

func (s *stubReservaRepo) HistorialActivoTx(_ *gorm.DB, reservaID uuid.UUID) ([]model.HistorialEstado, error) {
	return s.activos(reservaID), nil
}

func (s *stubReservaRepo) DesactivarHistorialTx(_ *gorm.DB, reservaID uuid.UUID, estadoID *uuid.UUID) error {
	for _, h := range s.historial {
		if h.ReservaID != reservaID {
			continue
		}
		if estadoID == nil || h.EstadoID == *estadoID {
			h.Activo = false
		}
	}
	return nil
}

func (s *stubReservaRepo) SolapadasCliente(_ context.Context, clienteID uuid.UUID, fechas []time.Time, liberadorIDs []uuid.UUID) ([]model.Reserva, error) {
	var out []model.Reserva
	for _, r := range s.reservas {
		if r.ClienteID != clienteID || contiene(liberadorIDs, r.EstadoID) {
			continue
		}
		for _, f := range fechas {
			if !f.Before(r.FechaInicio) && !f.After(r.FechaFin) {
				out = append(out, s.cargada(r))
				break
			}
		}
	}
	return out, nil
}

func (s *stubReservaRepo) DB() *gorm.DB { return nil }

// ── Stub: asignaciones ───────────────────────────────────────────────────────

type stubAsignacionRepo struct {
	mobiliario *stubMobiliarioRepo
	reservas   *stubReservaRepo
	rows       []*model.Asignacion
}

var _ repository.AsignacionRepository = (*stubAsignacionRepo)(nil)

func newStubAsignacionRepo(mobiliario *stubMobiliarioRepo) *stubAsignacionRepo {
	return &stubAsignacionRepo{mobiliario: mobiliario}
}

func (s *stubAsignacionRepo) cargada(a *model.Asignacion) model.Asignacion {
	c := *a
	if s.mobiliario != nil {
		c.Mobiliario = s.mobiliario.unidades[c.MobiliarioID]
	}
	if s.reservas != nil {
		if r, ok := s.reservas.reservas[c.ReservaID]; ok {
			copia := s.reservas.cargadaSinAsignaciones(r)
			c.Reserva = &copia
		}
	}
	return c
}

// cargadaSinAsignaciones evita la recursión asignación→reserva→asignación.
func (s *stubReservaRepo) cargadaSinAsignaciones(r *model.Reserva) model.Reserva {
	c := *r
	if s.estados != nil {
		c.Estado = s.estados.estados[c.EstadoID]
	}
	if s.clientes != nil {
		c.Cliente = s.clientes.clientes[c.ClienteID]
	}
	return c
}

// liberada informa si la reserva dueña de la fila está en un estado liberador.
func (s *stubAsignacionRepo) liberada(reservaID uuid.UUID, liberadorIDs []uuid.UUID) bool {
	if s.reservas == nil {
		return false
	}
	r, ok := s.reservas.reservas[reservaID]
	if !ok {
		return false
	}
	return contiene(liberadorIDs, r.EstadoID)
}

func (s *stubAsignacionRepo) CreateTx(_ *gorm.DB, a *model.Asignacion) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	fila := *a
	s.rows = append(s.rows, &fila)
	return nil
}

func (s *stubAsignacionRepo) DeleteTx(_ *gorm.DB, reservaID uuid.UUID, mobiliarioIDs []uuid.UUID, fecha time.Time) (int64, error) {
	var n int64
	restantes := s.rows[:0]
	for _, row := range s.rows {
		if row.ReservaID == reservaID && row.Fecha.Equal(fecha) && contiene(mobiliarioIDs, row.MobiliarioID) {
			n++
			continue
		}
		restantes = append(restantes, row)
	}
	s.rows = restantes
	return n, nil
}

func (s *stubAsignacionRepo) FindByReserva(_ context.Context, reservaID uuid.UUID) ([]model.Asignacion, error) {
	var out []model.Asignacion
	for _, row := range s.rows {
		if row.ReservaID == reservaID {
			out = append(out, s.cargada(row))
		}
	}
	return out, nil
}

func (s *stubAsignacionRepo) FindByReservaFecha(_ context.Context, reservaID uuid.UUID, fecha time.Time) ([]model.Asignacion, error) {
	var out []model.Asignacion
	for _, row := range s.rows {
		if row.ReservaID == reservaID && row.Fecha.Equal(fecha) {
			out = append(out, s.cargada(row))
		}
	}
	return out, nil
}

func (s *stubAsignacionRepo) OcupadasEnRango(_ context.Context, mobiliarioID uuid.UUID, desde, hasta time.Time, liberadorIDs []uuid.UUID) ([]model.Asignacion, error) {
	var out []model.Asignacion
	for _, row := range s.rows {
		if row.MobiliarioID != mobiliarioID || !row.Activa {
			continue
		}
		if row.Fecha.Before(desde) || row.Fecha.After(hasta) {
			continue
		}
		if s.liberada(row.ReservaID, liberadorIDs) {
			continue
		}
		out = append(out, s.cargada(row))
	}
	return out, nil
}

func (s *stubAsignacionRepo) OcupadasPorPares(_ context.Context, mobiliarioIDs []uuid.UUID, fechas []time.Time, liberadorIDs []uuid.UUID) ([]model.Asignacion, error) {
	var out []model.Asignacion
	for _, row := range s.rows {
		if !row.Activa || !contiene(mobiliarioIDs, row.MobiliarioID) {
			continue
		}
		enFecha := false
		for _, f := range fechas {
			if row.Fecha.Equal(f) {
				enFecha = true
				break
			}
		}
		if !enFecha || s.liberada(row.ReservaID, liberadorIDs) {
			continue
		}
		out = append(out, s.cargada(row))
	}
	return out, nil
}

func (s *stubAsignacionRepo) ConflictosTx(_ *gorm.DB, mobiliarioIDs []uuid.UUID, fecha time.Time, excluirReserva uuid.UUID, liberadorIDs []uuid.UUID) ([]model.Asignacion, error) {
	var out []model.Asignacion
	for _, row := range s.rows {
		if !row.Activa || !row.Fecha.Equal(fecha) || row.ReservaID == excluirReserva {
			continue
		}
		if !contiene(mobiliarioIDs, row.MobiliarioID) || s.liberada(row.ReservaID, liberadorIDs) {
			continue
		}
		out = append(out, s.cargada(row))
	}
	return out, nil
}

func (s *stubAsignacionRepo) OcupacionBruta(_ context.Context, mobiliarioIDs []uuid.UUID, fecha time.Time) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for _, row := range s.rows {
		if row.Fecha.Equal(fecha) && contiene(mobiliarioIDs, row.MobiliarioID) {
			out[row.MobiliarioID] = true
		}
	}
	return out, nil
}

func (s *stubAsignacionRepo) DesactivarPorReservaTx(_ *gorm.DB, reservaID uuid.UUID) error {
	for _, row := range s.rows {
		if row.ReservaID == reservaID {
			row.Activa = false
		}
	}
	return nil
}

func (s *stubAsignacionRepo) ReactivarPorReservaTx(_ *gorm.DB, reservaID uuid.UUID) error {
	for _, row := range s.rows {
		if row.ReservaID == reservaID {
			row.Activa = true
		}
	}
	return nil
}

func (s *stubAsignacionRepo) CountFuturas(_ context.Context, mobiliarioID uuid.UUID, fecha time.Time) (int64, error) {
	var n int64
	for _, row := range s.rows {
		if row.MobiliarioID == mobiliarioID && !row.Fecha.Before(fecha) {
			n++
		}
	}
	return n, nil
}

func (s *stubAsignacionRepo) DB() *gorm.DB { return nil }

// ── Stub: mobiliario ─────────────────────────────────────────────────────────

type stubMobiliarioRepo struct {
	unidades map[uuid.UUID]*model.Mobiliario
}

var _ repository.MobiliarioRepository = (*stubMobiliarioRepo)(nil)

func newStubMobiliarioRepo() *stubMobiliarioRepo {
	return &stubMobiliarioRepo{unidades: map[uuid.UUID]*model.Mobiliario{}}
}

func (s *stubMobiliarioRepo) agregar(m *model.Mobiliario) *model.Mobiliario {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.unidades[m.ID] = m
	return m
}

func (s *stubMobiliarioRepo) Create(_ context.Context, m *model.Mobiliario) error {
	s.agregar(m)
	return nil
}

func (s *stubMobiliarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mobiliario, error) {
	m, ok := s.unidades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *stubMobiliarioRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Mobiliario, error) {
	var out []model.Mobiliario
	for _, id := range ids {
		if m, ok := s.unidades[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubMobiliarioRepo) FindByNumero(_ context.Context, numero string) (*model.Mobiliario, error) {
	for _, m := range s.unidades {
		if m.Numero == numero {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMobiliarioRepo) List(_ context.Context, _ dto.MobiliarioFilter) ([]model.Mobiliario, error) {
	out := make([]model.Mobiliario, 0, len(s.unidades))
	for _, m := range s.unidades {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (s *stubMobiliarioRepo) ListActivos(_ context.Context, fecha time.Time, zonaID *uuid.UUID) ([]model.Mobiliario, error) {
	var out []model.Mobiliario
	for _, m := range s.unidades {
		if !m.VigenteEn(fecha) {
			continue
		}
		if zonaID != nil && m.ZonaID != *zonaID {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (s *stubMobiliarioRepo) Update(_ context.Context, m *model.Mobiliario) error {
	s.unidades[m.ID] = m
	return nil
}

func (s *stubMobiliarioRepo) ReplaceCaracteristicas(_ context.Context, m *model.Mobiliario, cs []model.Caracteristica) error {
	if guardado, ok := s.unidades[m.ID]; ok {
		guardado.Caracteristicas = cs
	}
	return nil
}

func (s *stubMobiliarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := s.unidades[id]; ok {
		m.Activo = false
	}
	return nil
}

func (s *stubMobiliarioRepo) NumerosPorPrefijo(_ context.Context, prefijo string) ([]string, error) {
	var out []string
	for _, m := range s.unidades {
		if strings.HasPrefix(m.Numero, prefijo) {
			out = append(out, m.Numero)
		}
	}
	return out, nil
}

func (s *stubMobiliarioRepo) LockByIDsTx(_ *gorm.DB, ids []uuid.UUID) ([]model.Mobiliario, error) {
	var out []model.Mobiliario
	for _, id := range ids {
		if m, ok := s.unidades[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubMobiliarioRepo) DB() *gorm.DB { return nil }

// ── Stub: preferencias ───────────────────────────────────────────────────────

type stubPreferenciaRepo struct {
	prefs           []model.Preferencia
	caracteristicas []model.Caracteristica
}

var _ repository.PreferenciaRepository = (*stubPreferenciaRepo)(nil)

// sembrarPreferencias carga el mapeo preferencia→característica del seed.
func (s *stubPreferenciaRepo) sembrar(codigos ...string) {
	for _, codigo := range codigos {
		c := model.Caracteristica{ID: uuid.New(), Codigo: codigo, Nombre: codigo}
		s.caracteristicas = append(s.caracteristicas, c)
		cc := c
		s.prefs = append(s.prefs, model.Preferencia{
			ID:               uuid.New(),
			Codigo:           codigo,
			Nombre:           codigo,
			CaracteristicaID: &cc.ID,
			Caracteristica:   &cc,
		})
	}
}

func (s *stubPreferenciaRepo) FindByCodigos(_ context.Context, codigos []string) ([]model.Preferencia, error) {
	var out []model.Preferencia
	for _, p := range s.prefs {
		for _, c := range codigos {
			if p.Codigo == c {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *stubPreferenciaRepo) List(_ context.Context) ([]model.Preferencia, error) {
	return s.prefs, nil
}

func (s *stubPreferenciaRepo) ListCaracteristicas(_ context.Context) ([]model.Caracteristica, error) {
	return s.caracteristicas, nil
}

func (s *stubPreferenciaRepo) FindCaracteristicasByCodigos(_ context.Context, codigos []string) ([]model.Caracteristica, error) {
	var out []model.Caracteristica
	for _, c := range s.caracteristicas {
		for _, cod := range codigos {
			if c.Codigo == cod {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (s *stubPreferenciaRepo) caracteristica(codigo string) model.Caracteristica {
	for _, c := range s.caracteristicas {
		if c.Codigo == codigo {
			return c
		}
	}
	panic("característica no sembrada: " + codigo)
}

// ── Stub: clientes ───────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: map[uuid.UUID]*model.Cliente{}}
}

func (s *stubClienteRepo) agregar(c *model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.clientes[c.ID] = c
	return c
}

func (s *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	s.agregar(c)
	return nil
}

func (s *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := s.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *stubClienteRepo) FindByEmail(_ context.Context, email string) (*model.Cliente, error) {
	for _, c := range s.clientes {
		if c.Email != nil && *c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	out := make([]model.Cliente, 0, len(s.clientes))
	for _, c := range s.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (s *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	s.clientes[c.ID] = c
	return nil
}

func (s *stubClienteRepo) ReplacePreferencias(_ context.Context, c *model.Cliente, prefs []model.Preferencia) error {
	if guardado, ok := s.clientes[c.ID]; ok {
		guardado.Preferencias = prefs
	}
	return nil
}

func (s *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := s.clientes[id]; ok {
		c.Activo = false
	}
	return nil
}

// ── Stub: lista de espera ────────────────────────────────────────────────────

type stubListaEsperaRepo struct {
	entradas map[uuid.UUID]*model.ListaEspera
}

var _ repository.ListaEsperaRepository = (*stubListaEsperaRepo)(nil)

func newStubListaEsperaRepo() *stubListaEsperaRepo {
	return &stubListaEsperaRepo{entradas: map[uuid.UUID]*model.ListaEspera{}}
}

func (s *stubListaEsperaRepo) Create(_ context.Context, e *model.ListaEspera) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	s.entradas[e.ID] = e
	return nil
}

func (s *stubListaEsperaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ListaEspera, error) {
	e, ok := s.entradas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *stubListaEsperaRepo) List(_ context.Context, filter dto.EsperaFilter) ([]model.ListaEspera, error) {
	var out []model.ListaEspera
	for _, e := range s.entradas {
		if filter.Estado != "" && filter.Estado != "all" && e.Estado != filter.Estado {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (s *stubListaEsperaRepo) Update(_ context.Context, e *model.ListaEspera) error {
	s.entradas[e.ID] = e
	return nil
}

func (s *stubListaEsperaRepo) UpdateTx(_ *gorm.DB, e *model.ListaEspera) error {
	s.entradas[e.ID] = e
	return nil
}

func (s *stubListaEsperaRepo) ExpirarVencidas(_ context.Context, hoy time.Time) (int64, error) {
	var n int64
	for _, e := range s.entradas {
		if e.Estado == model.EsperaPendiente && e.Fecha.Before(hoy) {
			e.Estado = model.EsperaExpirada
			n++
		}
	}
	return n, nil
}

func (s *stubListaEsperaRepo) DB() *gorm.DB { return nil }

// ── Stub: bloqueos ───────────────────────────────────────────────────────────

type stubBloqueoRepo struct {
	bloqueos map[uuid.UUID]*model.BloqueoMobiliario
}

var _ repository.BloqueoRepository = (*stubBloqueoRepo)(nil)

func newStubBloqueoRepo() *stubBloqueoRepo {
	return &stubBloqueoRepo{bloqueos: map[uuid.UUID]*model.BloqueoMobiliario{}}
}

func (s *stubBloqueoRepo) Create(_ context.Context, b *model.BloqueoMobiliario) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	s.bloqueos[b.ID] = b
	return nil
}

func (s *stubBloqueoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BloqueoMobiliario, error) {
	b, ok := s.bloqueos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *stubBloqueoRepo) List(_ context.Context, filter dto.BloqueoFilter) ([]model.BloqueoMobiliario, error) {
	var out []model.BloqueoMobiliario
	for _, b := range s.bloqueos {
		if filter.MobiliarioID != "" && b.MobiliarioID.String() != filter.MobiliarioID {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaInicio.Before(out[j].FechaInicio) })
	return out, nil
}

func (s *stubBloqueoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.bloqueos, id)
	return nil
}

// ── Stub: usuarios ───────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: map[uuid.UUID]*model.Usuario{}}
}

func (s *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.usuarios[u.ID] = u
	return nil
}

func (s *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range s.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := s.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(s.usuarios))
	for _, u := range s.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	s.usuarios[u.ID] = u
	return nil
}

func (s *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := s.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (s *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := s.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

// ── Stub: zonas ──────────────────────────────────────────────────────────────

type stubZonaRepo struct {
	zonas map[uuid.UUID]*model.Zona
}

var _ repository.ZonaRepository = (*stubZonaRepo)(nil)

func newStubZonaRepo() *stubZonaRepo {
	return &stubZonaRepo{zonas: map[uuid.UUID]*model.Zona{}}
}

func (s *stubZonaRepo) agregar(z *model.Zona) *model.Zona {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	s.zonas[z.ID] = z
	return z
}

func (s *stubZonaRepo) Create(_ context.Context, z *model.Zona) error {
	s.agregar(z)
	return nil
}

func (s *stubZonaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Zona, error) {
	z, ok := s.zonas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return z, nil
}

func (s *stubZonaRepo) FindByNombre(_ context.Context, nombre string) (*model.Zona, error) {
	for _, z := range s.zonas {
		if z.Nombre == nombre {
			return z, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubZonaRepo) List(_ context.Context) ([]model.Zona, error) {
	out := make([]model.Zona, 0, len(s.zonas))
	for _, z := range s.zonas {
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Orden < out[j].Orden })
	return out, nil
}

func (s *stubZonaRepo) Update(_ context.Context, z *model.Zona) error {
	s.zonas[z.ID] = z
	return nil
}

func (s *stubZonaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.zonas, id)
	return nil
}

func (s *stubZonaRepo) CountMobiliario(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

func (s *stubZonaRepo) CountHijas(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

// ── Entorno de pruebas ───────────────────────────────────────────────────────

// entorno levanta el grafo de servicios completo sobre los stubs, con el
// dispatcher a nil (los efectos asíncronos no se encolan en tests unitarios).
type entorno struct {
	estados    *stubEstadoRepo
	reservas   *stubReservaRepo
	asigs      *stubAsignacionRepo
	mobiliario *stubMobiliarioRepo
	prefs      *stubPreferenciaRepo
	clientes   *stubClienteRepo
	espera     *stubListaEsperaRepo
	bloqueos   *stubBloqueoRepo
	zonas      *stubZonaRepo

	zona *model.Zona

	estadoSvc         service.EstadoService
	reservaSvc        service.ReservaService
	asignacionSvc     service.AsignacionService
	disponibilidadSvc service.DisponibilidadService
	sugerenciaSvc     service.SugerenciaService
	bloqueoSvc        service.BloqueoService
	esperaSvc         service.ListaEsperaService
	mobiliarioSvc     service.MobiliarioService
}

func nuevoEntorno() *entorno {
	e := &entorno{
		estados:    newStubEstadoRepo(),
		mobiliario: newStubMobiliarioRepo(),
		prefs:      &stubPreferenciaRepo{},
		clientes:   newStubClienteRepo(),
		espera:     newStubListaEsperaRepo(),
		bloqueos:   newStubBloqueoRepo(),
		zonas:      newStubZonaRepo(),
	}
	e.estados.sembrarSistema()
	e.reservas = newStubReservaRepo(e.estados)
	e.reservas.clientes = e.clientes
	e.asigs = newStubAsignacionRepo(e.mobiliario)
	e.asigs.reservas = e.reservas
	e.reservas.asigs = e.asigs
	e.zona = e.zonas.agregar(&model.Zona{Nombre: "Playa", Orden: 1, Activo: true})

	e.estadoSvc = service.NewEstadoService(e.reservas, e.estados, e.asigs, nil)
	e.reservaSvc = service.NewReservaService(e.reservas, e.clientes, e.mobiliario, e.asigs, e.estados, e.estadoSvc, nil)
	e.asignacionSvc = service.NewAsignacionService(e.asigs, e.reservas, e.mobiliario, e.estados, e.prefs)
	e.disponibilidadSvc = service.NewDisponibilidadService(e.asigs, e.mobiliario, e.estados)
	e.sugerenciaSvc = service.NewSugerenciaService(e.mobiliario, e.asigs, e.estados, e.prefs)
	e.bloqueoSvc = service.NewBloqueoService(e.bloqueos, e.mobiliario, e.asigs, e.estados)
	e.esperaSvc = service.NewListaEsperaService(e.espera, e.clientes, e.prefs, e.reservaSvc)
	e.mobiliarioSvc = service.NewMobiliarioService(e.mobiliario, e.zonas, e.asigs, e.prefs)
	return e
}

func (e *entorno) nuevoCliente(nombre string) *model.Cliente {
	return e.clientes.agregar(&model.Cliente{Nombre: nombre, Activo: true})
}

func (e *entorno) nuevaUnidad(numero, tipo string, capacidad int, x, y float64) *model.Mobiliario {
	return e.mobiliario.agregar(&model.Mobiliario{
		Numero:    numero,
		ZonaID:    e.zona.ID,
		Tipo:      tipo,
		Capacidad: capacidad,
		PosX:      x,
		PosY:      y,
		Activo:    true,
	})
}

// nuevaReserva crea directamente en los stubs una reserva de un día con su
// historial y asignaciones, saltándose el servicio.
func (e *entorno) nuevaReserva(cliente *model.Cliente, fecha time.Time, estadoCodigo string, unidades ...*model.Mobiliario) *model.Reserva {
	estado := e.estados.porCodigo(estadoCodigo)
	res := &model.Reserva{
		ID:          uuid.New(),
		ClienteID:   cliente.ID,
		FechaInicio: fecha,
		FechaFin:    fecha,
		NumPersonas: 2,
		EstadoID:    estado.ID,
		Tipo:        model.ReservaNormal,
	}
	_ = e.reservas.Create(context.Background(), nil, res)
	_ = e.reservas.CreateHistorialTx(nil, &model.HistorialEstado{
		ReservaID:   res.ID,
		EstadoID:    estado.ID,
		Activo:      true,
		CambiadoPor: "test",
	})
	activa := !estado.LiberaDisponibilidad
	for _, u := range unidades {
		_ = e.asigs.CreateTx(nil, &model.Asignacion{
			ReservaID:    res.ID,
			MobiliarioID: u.ID,
			Fecha:        fecha,
			Activa:       activa,
			AsignadoPor:  "test",
		})
	}
	return e.reservas.reservas[res.ID]
}
