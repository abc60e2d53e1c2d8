package server

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"strconv"

	"github.com/mylittlegrimoire/server/internal/config"
	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/identify"
	playerqueries "github.com/mylittlegrimoire/server/internal/modules/player/queries"
	recipequeries "github.com/mylittlegrimoire/server/internal/modules/recipe/queries"
	"github.com/mylittlegrimoire/server/internal/modules/session"
	sessioncommands "github.com/mylittlegrimoire/server/internal/modules/session/commands"
	sessionqueries "github.com/mylittlegrimoire/server/internal/modules/session/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(conf config.Config) (Server, error) {
	baseCtx := context.Background()

	db, err := sql.Open("postgres", conf.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, conf.MigrationsPath); err != nil {
		return nil, err
	}

	core.SetLogger(conf.Logger)

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: conf.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: conf.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	identifier := identify.NewHTTPIdentifier(conf.Identifier, conf.Logger)

	// handler registration

	// session

	createSessionHandler := sessioncommands.NewCreateSessionCommandHandler(db, conf.JoinCodeLength)
	err = mediator.RegisterRequestHandler[sessioncommands.CreateSessionCommand, sessioncommands.CreateSessionResponse](
		createSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	joinSessionHandler := sessioncommands.NewJoinSessionCommandHandler(db, conf.JoinRadiusMeters)
	err = mediator.RegisterRequestHandler[sessioncommands.JoinSessionCommand, sessioncommands.JoinSessionResponse](
		joinSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	startCollectingHandler := sessioncommands.NewStartCollectingCommandHandler(db)
	err = mediator.RegisterRequestHandler[sessioncommands.StartCollectingCommand, sessioncommands.StartCollectingResponse](
		startCollectingHandler,
	)
	if err != nil {
		return nil, err
	}

	collectFlowerHandler := sessioncommands.NewCollectFlowerCommandHandler(db, identifier, conf.Logger)
	err = mediator.RegisterRequestHandler[sessioncommands.CollectFlowerCommand, sessioncommands.CollectFlowerResponse](
		collectFlowerHandler,
	)
	if err != nil {
		return nil, err
	}

	leaveSessionHandler := sessioncommands.NewLeaveSessionCommandHandler(db)
	err = mediator.RegisterRequestHandler[sessioncommands.LeaveSessionCommand, sessioncommands.LeaveSessionResponse](
		leaveSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	updateAnchorHandler := sessioncommands.NewUpdateAnchorCommandHandler(db)
	err = mediator.RegisterRequestHandler[sessioncommands.UpdateAnchorCommand, sessioncommands.UpdateAnchorResponse](
		updateAnchorHandler,
	)
	if err != nil {
		return nil, err
	}

	sweepSessionsHandler := sessioncommands.NewSweepSessionsCommandHandler(db, conf.SessionTTL)
	err = mediator.RegisterRequestHandler[sessioncommands.SweepSessionsCommand, sessioncommands.SweepSessionsResponse](
		sweepSessionsHandler,
	)
	if err != nil {
		return nil, err
	}

	getCurrentSessionHandler := sessionqueries.NewGetCurrentSessionQueryHandler(db)
	err = mediator.RegisterRequestHandler[sessionqueries.GetCurrentSessionQuery, session.View](
		getCurrentSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	// catalog

	getRecipesHandler := recipequeries.NewGetRecipesQueryHandler(db)
	err = mediator.RegisterRequestHandler[recipequeries.GetRecipesQuery, []recipequeries.RecipeView](
		getRecipesHandler,
	)
	if err != nil {
		return nil, err
	}

	getFlowersHandler := recipequeries.NewGetFlowersQueryHandler(db)
	err = mediator.RegisterRequestHandler[recipequeries.GetFlowersQuery, []recipequeries.FlowerView](
		getFlowersHandler,
	)
	if err != nil {
		return nil, err
	}

	getInventoryHandler := playerqueries.NewGetInventoryQueryHandler(db)
	err = mediator.RegisterRequestHandler[playerqueries.GetInventoryQuery, playerqueries.InventoryView](
		getInventoryHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	r := chi.NewRouter()
	r.Use(core.CorrelationIDHTTPMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		core.WriteOK(w, r, map[string]string{"status": "healthy"})
	})

	r.Post("/sessions", sessioncommands.HandleCreateSession)
	r.Post("/sessions/actions/join", sessioncommands.HandleJoinSession)
	r.Post("/sessions/actions/start", sessioncommands.HandleStartCollecting)
	r.Post("/sessions/actions/collect", sessioncommands.HandleCollectFlower)
	r.Post("/sessions/actions/leave", sessioncommands.HandleLeaveSession)
	r.Put("/sessions/anchor", sessioncommands.HandleUpdateAnchor)
	r.Get("/sessions/current", sessionqueries.HandleGetCurrentSession)

	r.Post("/admin/sessions/actions/sweep", sessioncommands.HandleSweepSessions)

	r.Get("/recipes", recipequeries.HandleGetRecipes)
	r.Get("/flowers", recipequeries.HandleGetFlowers)
	r.Get("/players/{id}/inventory", playerqueries.HandleGetInventory)

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(conf.Port)),
		Handler: r,
	}

	return &HTTPServer{server: &server}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	return s.server.Close()
}
