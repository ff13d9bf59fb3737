// Command snapshot renders a room's persisted canvas history to a PNG
// file, useful for previews and debugging what a room replay contains.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/purvjoshi04/SharedInk/internal/canvas"
	"github.com/purvjoshi04/SharedInk/internal/client"
	"github.com/purvjoshi04/SharedInk/internal/config"
	"github.com/purvjoshi04/SharedInk/internal/render"
	"github.com/purvjoshi04/SharedInk/internal/repository"
	"github.com/purvjoshi04/SharedInk/pkg/database"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

func main() {
	roomID := flag.String("room", "", "room id to render")
	out := flag.String("out", "canvas.png", "output file")
	width := flag.Int("width", 1920, "image width")
	height := flag.Int("height", 1080, "image height")
	scale := flag.Float64("scale", 1, "camera scale")
	flag.Parse()

	if *roomID == "" {
		fmt.Fprintln(os.Stderr, "usage: snapshot -room <id> [-out canvas.png]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	l := log.L()

	db, err := database.New(&cfg.Database)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}

	store, err := repository.NewGormStore(db)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize store")
	}

	ctx := context.Background()

	if _, err := store.FindRoomByID(ctx, *roomID); err != nil {
		l.Fatal().Err(err).Str(log.FieldRoomID, *roomID).Msg("room lookup failed")
	}

	msgs, err := store.ListMessages(ctx, *roomID, 0)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to load messages")
	}

	shapeStore := canvas.NewStore()
	for _, msg := range msgs {
		s, err := client.DecodeChatShape(msg.Content)
		if err != nil {
			l.Debug().Int64("message_id", msg.ID).Msg("skipping undecodable entry")
			continue
		}
		shapeStore.ApplyRemoteAdd(s)
	}

	f, err := os.Create(*out)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create output file")
	}
	defer f.Close()

	cam := canvas.Camera{Scale: *scale}
	r := render.NewRenderer(*width, *height)
	if err := r.RenderPNG(f, shapeStore.Snapshot(), cam); err != nil {
		l.Fatal().Err(err).Msg("render failed")
	}

	l.Info().Str("out", *out).Int("shapes", shapeStore.Len()).Msg("snapshot written")
}
