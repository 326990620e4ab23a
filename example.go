package main

import (
	"context"
	"fmt"

	"github.com/otsproject/ots/internal/core/application"
	"github.com/otsproject/ots/internal/core/domain"
	linear_estimator "github.com/otsproject/ots/internal/infrastructure/chain-estimator/linear"
	aes128_cypher "github.com/otsproject/ots/internal/infrastructure/seed-cypher/aes128"
	"github.com/otsproject/ots/internal/infrastructure/storage/db/inmemory"
	log "github.com/sirupsen/logrus"
)

const passphrase = "correct horse battery staple"

func main() {
	log.SetLevel(log.DebugLevel)

	ctx := context.Background()
	repo := inmemory.NewSeedRecordRepository()
	defer repo.Close()

	svc := application.NewCustodyService(
		inmemory.NewKeyJar(0),
		inmemory.NewSeedJar(),
		repo,
		aes128_cypher.NewAES128Cypher(),
		linear_estimator.NewService(),
	)

	seed, err := svc.GenerateSeed(ctx, application.GenerateSeedArgs{
		Type: "polyseed",
	}, domain.NetworkMain)
	if err != nil {
		log.WithError(err).Fatal("failed to generate seed")
	}
	fmt.Println("FINGERPRINT:", seed.Fingerprint)
	fmt.Println("ADDRESS:", seed.Address)
	fmt.Println("RESTORE HEIGHT:", seed.Height)

	phrase, err := svc.ExportSeed(ctx, seed.Fingerprint, "es")
	if err != nil {
		log.WithError(err).Fatal("failed to export seed")
	}
	fmt.Println("PHRASE (es):", phrase)

	if err := svc.PersistSeed(
		ctx, seed.Fingerprint, "demo", passphrase,
	); err != nil {
		log.WithError(err).Fatal("failed to persist seed")
	}
	if err := svc.ForgetSeed(ctx, seed.Fingerprint, false); err != nil {
		log.WithError(err).Fatal("failed to forget seed")
	}

	restored, err := svc.RestoreSeed(ctx, seed.Fingerprint, passphrase)
	if err != nil {
		log.WithError(err).Fatal("failed to restore seed")
	}
	fmt.Println("RESTORED:", restored.Fingerprint)

	signature, err := svc.SignData(ctx, restored.Fingerprint, []byte("hello"))
	if err != nil {
		log.WithError(err).Fatal("failed to sign data")
	}
	fmt.Println("SIGNATURE:", signature)
}
