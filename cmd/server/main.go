package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hitser/spotify-token-server/auth"
	"github.com/hitser/spotify-token-server/authflow"
	"github.com/hitser/spotify-token-server/internal/config"
	"github.com/hitser/spotify-token-server/server"
	"github.com/hitser/spotify-token-server/sessions"
	"github.com/hitser/spotify-token-server/spotify"
	"github.com/hitser/spotify-token-server/token"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	if c.GetClientID() == "" || c.GetClientSecret() == "" {
		log.Warn().Msg("CLIENT_ID or CLIENT_SECRET not set; Spotify calls will fail")
	}

	srv, err := buildServer(c)
	if err != nil {
		return fmt.Errorf("buildServer: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	stateRepo := authflow.NewInMemoryRepo(authflow.DefaultTTL)
	ledger, err := authflow.NewLedger(stateRepo)
	if err != nil {
		return nil, fmt.Errorf("authflow.NewLedger: %w", err)
	}

	store := sessions.NewInMemoryStore()
	client := spotify.NewAccountsClient(c.GetClientID(), c.GetClientSecret())

	flow, err := auth.NewFlowService(c, ledger, store, client)
	if err != nil {
		return nil, fmt.Errorf("auth.NewFlowService: %w", err)
	}

	tokens, err := token.NewManager(store, client)
	if err != nil {
		return nil, fmt.Errorf("token.NewManager: %w", err)
	}

	return server.New(c, flow, tokens)
}

func setupLogging(c config.Config) {
	if c.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
