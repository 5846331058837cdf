package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/liut/finai/pkg/models/bot"
	"github.com/liut/finai/pkg/services/finai"
	"github.com/liut/finai/pkg/services/oss"
	"github.com/liut/finai/pkg/services/sessions"
	"github.com/liut/finai/pkg/services/stores"
	"github.com/liut/finai/pkg/settings"
	"github.com/liut/finai/pkg/web"
)

var sessionFlag = &cli.StringFlag{Name: "session", Aliases: []string{"s"}, Value: "cli", Usage: "session id"}

var errArgs = errors.New("missing arguments")

func newBot(sm *sessions.Manager) (*finai.Client, error) {
	cfg := settings.Current
	replies, err := stores.LoadReplies(cfg.RepliesFile)
	if err != nil {
		return nil, err
	}
	return finai.New(finai.Config{
		BaseURL:     cfg.BaseURL,
		ChannelType: cfg.ChannelType,
		Timeout:     cfg.RequestTimeoutDuration(),
		RetryDelay:  cfg.RetryDelay,
		Replies:     replies,
	}, sm, finai.WithHTTPClient(stores.NewHTTPClient(cfg.RequestTimeoutDuration()))), nil
}

func newObjectStore(ctx context.Context) (*oss.Store, error) {
	cfg := settings.Current
	if !cfg.MinioEnabled() {
		return nil, errors.New("minio is not configured")
	}
	sto, err := oss.New(oss.Config{
		Endpoint:  cfg.MinioURL,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucketName,
		Secure:    cfg.MinioSecure,
		Region:    cfg.MinioRegion,
	})
	if err != nil {
		return nil, err
	}
	if err = sto.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return sto, nil
}

func serveAction(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	sugar := zap.S()

	sm := sessions.NewManager(settings.Current.Model)
	fc, err := newBot(sm)
	if err != nil {
		return err
	}

	wcfg := web.Config{
		Addr:      settings.Current.HTTPListen,
		Debug:     settings.InDevelop(),
		RateLimit: settings.Current.RateLimit,
	}
	if uri := settings.Current.RedisURI; len(uri) > 0 {
		rc, err := stores.NewRedisClient(uri)
		if err != nil {
			return err
		}
		defer rc.Close()
		wcfg.Redis = rc
	}

	var ost web.ObjectStore
	if settings.Current.MinioEnabled() {
		sto, err := newObjectStore(ctx)
		if err != nil {
			return err
		}
		ost = sto
	}

	srv, err := web.New(wcfg, fc, sm, ost)
	if err != nil {
		return err
	}

	err = srv.Serve(ctx)
	sugar.Info("shuting down server...")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := srv.Stop(sctx); serr != nil {
		sugar.Infow("server shutdown:", "err", serr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func askAction(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return errArgs
	}
	return replyOnce(c, &bot.Context{Type: bot.CtText, Content: c.Args().First(), SessionID: c.String("session")})
}

func imageAction(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return errArgs
	}
	return replyOnce(c, &bot.Context{Type: bot.CtImage, Content: c.Args().First(), SessionID: c.String("session")})
}

func replyOnce(c *cli.Context, bc *bot.Context) error {
	fc, err := newBot(sessions.NewManager(settings.Current.Model))
	if err != nil {
		return err
	}
	reply := fc.Reply(c.Context, bc.Content, bc)
	fmt.Fprintf(c.App.Writer, "[%s] %s\n", reply.Type, reply.Content)
	return nil
}

func putAction(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return errArgs
	}
	sto, err := newObjectStore(c.Context)
	if err != nil {
		return err
	}
	return sto.Put(c.Context, c.Args().Get(0), c.Args().Get(1))
}

func getAction(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return errArgs
	}
	sto, err := newObjectStore(c.Context)
	if err != nil {
		return err
	}
	data, err := sto.Get(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	if out := c.String("out"); len(out) > 0 {
		return os.WriteFile(out, data, 0o644)
	}
	_, err = c.App.Writer.Write(data)
	return err
}
