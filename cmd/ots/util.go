package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/otsproject/ots/internal/config"
	"github.com/otsproject/ots/internal/core/application"
	"github.com/otsproject/ots/internal/core/domain"
	chain_estimator "github.com/otsproject/ots/internal/infrastructure/chain-estimator/linear"
	seed_cypher "github.com/otsproject/ots/internal/infrastructure/seed-cypher/aes128"
	dbbadger "github.com/otsproject/ots/internal/infrastructure/storage/db/badger"
	"github.com/otsproject/ots/internal/infrastructure/storage/db/inmemory"
)

var (
	custodySvc  *application.CustodyService
	custodyRepo domain.SeedRecordRepository
)

// getCustodyService lazily composes the in-process custody context: jars,
// record repository, cypher and estimator, wired from env config.
func getCustodyService() (*application.CustodyService, error) {
	if custodySvc != nil {
		return custodySvc, nil
	}

	var repo domain.SeedRecordRepository
	var err error
	switch config.GetString(config.DatabaseTypeKey) {
	case "badger":
		dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
		repo, err = dbbadger.NewSeedRecordRepository(dbDir, nil)
		if err != nil {
			return nil, err
		}
	default:
		repo = inmemory.NewSeedRecordRepository()
	}
	custodyRepo = repo

	custodySvc = application.NewCustodyService(
		inmemory.NewKeyJar(config.GetInt(config.KeyJarCapacityKey)),
		inmemory.NewSeedJar(),
		repo,
		seed_cypher.NewAES128Cypher(),
		chain_estimator.NewService(),
	)
	return custodySvc, nil
}

func closeCustody() {
	if custodyRepo != nil {
		custodyRepo.Close()
	}
}

func printRespJSON(resp interface{}) {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println(resp)
		return
	}
	fmt.Println(string(buf))
}
