package container

import (
	"dice-counter/config"
	app "dice-counter/internal/application"
	"dice-counter/internal/domain/port"
)

type Container struct {
	Session     *app.DetectionSession
	DiceService *app.DiceService
	Dispatcher  *app.AnnouncementDispatcher
	Subscribers port.SubscriberRepository
}

func New(cfg *config.Config, subscribers port.SubscriberRepository, detector port.BlobDetector, overlay port.Overlay) (*Container, error) {
	session, err := app.NewSession(app.SessionConfig{
		DistanceCm:     cfg.CameraDistanceCm,
		Policy:         app.RangePolicy(cfg.ClusteringRadiusFallback),
		WindowCapacity: cfg.StabilityWindowCapacity,
	})
	if err != nil {
		return nil, err
	}

	dispatcher := app.NewAnnouncementDispatcher(cfg.AnnounceQueueSize)
	diceService := app.NewDiceService(session, detector, overlay, dispatcher)

	return &Container{
		Session:     session,
		DiceService: diceService,
		Dispatcher:  dispatcher,
		Subscribers: subscribers,
	}, nil
}
