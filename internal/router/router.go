package router

import (
	"time"

	"purobeach/internal/config"
	"purobeach/internal/handler"
	"purobeach/internal/infra"
	"purobeach/internal/middleware"
	"purobeach/internal/repository"
	"purobeach/internal/service"
	"purobeach/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, incidenciasCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	zonaRepo := repository.NewZonaRepository(db)
	mobiliarioRepo := repository.NewMobiliarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	preferenciaRepo := repository.NewPreferenciaRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	asignacionRepo := repository.NewAsignacionRepository(db)
	estadoRepo := repository.NewEstadoRepository(db)
	bloqueoRepo := repository.NewBloqueoRepository(db)
	esperaRepo := repository.NewListaEsperaRepository(db)
	paqueteRepo := repository.NewPaqueteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	zonaSvc := service.NewZonaService(zonaRepo)
	mobiliarioSvc := service.NewMobiliarioService(mobiliarioRepo, zonaRepo, asignacionRepo, preferenciaRepo)
	clienteSvc := service.NewClienteService(clienteRepo, preferenciaRepo)
	paqueteSvc := service.NewPaqueteService(paqueteRepo)
	estadoSvc := service.NewEstadoService(reservaRepo, estadoRepo, asignacionRepo, dispatcher)
	reservaSvc := service.NewReservaService(reservaRepo, clienteRepo, mobiliarioRepo, asignacionRepo, estadoRepo, estadoSvc, dispatcher)
	disponibilidadSvc := service.NewDisponibilidadService(asignacionRepo, mobiliarioRepo, estadoRepo)
	asignacionSvc := service.NewAsignacionService(asignacionRepo, reservaRepo, mobiliarioRepo, estadoRepo, preferenciaRepo)
	sugerenciaSvc := service.NewSugerenciaService(mobiliarioRepo, asignacionRepo, estadoRepo, preferenciaRepo)
	bloqueoSvc := service.NewBloqueoService(bloqueoRepo, mobiliarioRepo, asignacionRepo, estadoRepo)
	esperaSvc := service.NewListaEsperaService(esperaRepo, clienteRepo, preferenciaRepo, reservaSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	zonasH := handler.NewZonasHandler(zonaSvc)
	mobiliarioH := handler.NewMobiliarioHandler(mobiliarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	reservasH := handler.NewReservasHandler(reservaSvc, estadoSvc)
	asignacionesH := handler.NewAsignacionesHandler(asignacionSvc)
	disponibilidadH := handler.NewDisponibilidadHandler(disponibilidadSvc)
	sugerenciasH := handler.NewSugerenciasHandler(sugerenciaSvc, asignacionSvc)
	bloqueosH := handler.NewBloqueosHandler(bloqueoSvc)
	esperaH := handler.NewListaEsperaHandler(esperaSvc)
	estadosH := handler.NewEstadosHandler(estadoSvc)
	paquetesH := handler.NewPaquetesHandler(paqueteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, incidenciasCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: recepcionista, supervisor, administrador — declared per-endpoint
		todos := middleware.RequireRole(middleware.RolRecepcionista, middleware.RolSupervisor, middleware.RolAdministrador)
		gestion := middleware.RequireRole(middleware.RolSupervisor, middleware.RolAdministrador)
		admin := middleware.RequireRole(middleware.RolAdministrador)

		// Reservas — la operación diaria de recepción
		v1.POST("/reservas", todos, reservasH.Crear)
		v1.GET("/reservas", todos, reservasH.Listar)
		v1.GET("/reservas/:id", todos, reservasH.Obtener)
		v1.PUT("/reservas/:id", todos, reservasH.Actualizar)
		v1.DELETE("/reservas/:id", todos, reservasH.Cancelar)
		v1.GET("/reservas/:id/historial", todos, reservasH.Historial)

		// Estados sobre la reserva
		v1.POST("/reservas/:id/estados", todos, reservasH.AgregarEstado)
		v1.PUT("/reservas/:id/estados", todos, reservasH.CambiarEstado)
		v1.DELETE("/reservas/:id/estados/:codigo", todos, reservasH.QuitarEstado)

		// Asignación de mobiliario (modo mover)
		v1.POST("/reservas/:id/asignaciones", todos, asignacionesH.Asignar)
		v1.DELETE("/reservas/:id/asignaciones", todos, asignacionesH.Desasignar)
		v1.PUT("/reservas/:id/bloquear-mobiliario", gestion, asignacionesH.Bloquear)
		v1.GET("/reservas/:id/pool", todos, asignacionesH.Pool)

		// Disponibilidad
		disp := v1.Group("/disponibilidad", todos)
		{
			disp.POST("/check-bulk", disponibilidadH.CheckBulk)
			disp.GET("/mapa", disponibilidadH.Mapa)
			disp.GET("/conflictos", disponibilidadH.Conflictos)
		}

		// Sugerencias
		v1.GET("/sugerencias", todos, sugerenciasH.Sugerir)
		v1.GET("/sugerencias/coincidencias", todos, sugerenciasH.Coincidencias)

		// Lista de espera
		espera := v1.Group("/lista-espera", todos)
		{
			espera.POST("", esperaH.Crear)
			espera.GET("", esperaH.Listar)
			espera.POST("/:id/convertir", esperaH.Convertir)
			espera.DELETE("/:id", esperaH.Cancelar)
		}

		// Clientes
		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", gestion, clientesH.Eliminar)

		// Bloqueos de mantenimiento — supervisor o administrador
		bloqueos := v1.Group("/bloqueos", gestion)
		{
			bloqueos.POST("", bloqueosH.Crear)
			bloqueos.GET("", bloqueosH.Listar)
			bloqueos.DELETE("/:id", bloqueosH.Eliminar)
		}

		// Configuración del plano — lectura para todos, escritura para administración
		v1.GET("/zonas", todos, zonasH.Listar)
		zonas := v1.Group("/zonas", admin)
		{
			zonas.POST("", zonasH.Crear)
			zonas.PUT("/:id", zonasH.Actualizar)
			zonas.DELETE("/:id", zonasH.Eliminar)
		}

		v1.GET("/mobiliario", todos, mobiliarioH.Listar)
		v1.GET("/mobiliario/siguiente-numero", gestion, mobiliarioH.SiguienteNumero)
		v1.GET("/mobiliario/:id", todos, mobiliarioH.Obtener)
		mob := v1.Group("/mobiliario", admin)
		{
			mob.POST("", mobiliarioH.Crear)
			mob.PUT("/:id", mobiliarioH.Actualizar)
			mob.DELETE("/:id", mobiliarioH.Eliminar)
		}

		// Catálogo de estados
		v1.GET("/estados", todos, estadosH.Listar)
		v1.GET("/estados/:codigo/transiciones", todos, estadosH.Transiciones)
		estados := v1.Group("/estados", admin)
		{
			estados.POST("", estadosH.Crear)
			estados.PUT("/:id", estadosH.Actualizar)
			estados.DELETE("/:id", estadosH.Eliminar)
		}

		// Paquetes de temporada
		v1.GET("/paquetes", todos, paquetesH.Listar)
		v1.GET("/paquetes/:id", todos, paquetesH.Obtener)

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.POST("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
