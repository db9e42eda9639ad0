// Command seed loads the Kinshasa reference data: the 24 communes and the
// problem categories. Idempotent: rows that already exist are left untouched,
// so it can run on every deploy.
package main

import (
	"context"
	"log/slog"
	"os"

	"alerte/config"
	"alerte/internal/domain/entity"
	"alerte/internal/domain/repository"
	logs "alerte/internal/infra/log"
	"alerte/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type seedParams struct {
	fx.In
	fx.Shutdowner

	Logger          *slog.Logger
	CommuneRepo     repository.CommuneRepository
	ProblemTypeRepo repository.ProblemTypeRepository
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewCommuneRepository,
			postgres.NewProblemTypeRepository,
		),
		fx.Invoke(run),
	).Run()
}

func run(ctx context.Context, params seedParams) {
	exitCode := 0
	if err := seed(ctx, params); err != nil {
		params.Logger.Error("Seeding failed", slog.Any("error", err))
		exitCode = 1
	}

	if err := params.Shutdown(fx.ExitCode(exitCode)); err != nil {
		params.Logger.Error("Failed to shutdown", slog.Any("error", err))
		os.Exit(1)
	}
}

func seed(ctx context.Context, params seedParams) error {
	createdCommunes, err := seedCommunes(ctx, params.CommuneRepo)
	if err != nil {
		return err
	}

	createdTypes, err := seedProblemTypes(ctx, params.ProblemTypeRepo)
	if err != nil {
		return err
	}

	params.Logger.Info("Seeding completed",
		slog.Int("communesCreated", createdCommunes),
		slog.Int("problemTypesCreated", createdTypes),
	)

	return nil
}

type communeSeed struct {
	name       string
	lat        float64
	lng        float64
	population int
}

// The 24 communes of Kinshasa. Coordinates are approximate centroids;
// population figures are rounded estimates used only for display.
var communes = []communeSeed{
	{"Bandalungwa", -4.3419, 15.2848, 202000},
	{"Barumbu", -4.3100, 15.3139, 154000},
	{"Bumbu", -4.3772, 15.2886, 333000},
	{"Gombe", -4.3030, 15.3003, 32000},
	{"Kalamu", -4.3414, 15.3083, 316000},
	{"Kasa-Vubu", -4.3375, 15.2958, 147000},
	{"Kimbanseke", -4.4178, 15.4342, 1200000},
	{"Kinshasa", -4.3181, 15.3072, 167000},
	{"Kintambo", -4.3286, 15.2644, 106000},
	{"Kisenso", -4.3850, 15.3544, 459000},
	{"Lemba", -4.3850, 15.3253, 349000},
	{"Limete", -4.3531, 15.3381, 375000},
	{"Lingwala", -4.3158, 15.2972, 104000},
	{"Makala", -4.3744, 15.3003, 296000},
	{"Maluku", -4.0833, 15.5500, 209000},
	{"Masina", -4.3850, 15.3917, 790000},
	{"Matete", -4.3900, 15.3364, 269000},
	{"Mont-Ngafula", -4.4333, 15.2667, 298000},
	{"Ndjili", -4.4000, 15.3733, 458000},
	{"Ngaba", -4.3661, 15.3139, 199000},
	{"Ngaliema", -4.3597, 15.2200, 684000},
	{"Ngiri-Ngiri", -4.3486, 15.2958, 175000},
	{"Nsele", -4.3167, 15.5667, 230000},
	{"Selembao", -4.3700, 15.2733, 364000},
}

func seedCommunes(ctx context.Context, repo repository.CommuneRepository) (int, error) {
	created := 0
	for _, seed := range communes {
		_, err := repo.FindByName(ctx, seed.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrCommuneNotFound) {
			return created, errors.Wrapf(err, "failed to look up commune %q", seed.name)
		}

		commune := &entity.Commune{
			ID:         uuid.New(),
			Name:       seed.name,
			Location:   orb.Point{seed.lng, seed.lat},
			Population: seed.population,
		}
		if err := repo.Create(ctx, commune); err != nil {
			return created, errors.Wrapf(err, "failed to create commune %q", seed.name)
		}
		created++
	}

	return created, nil
}

type problemTypeSeed struct {
	name          string
	description   string
	priorityLevel int
}

var problemTypes = []problemTypeSeed{
	{"Déchets", "Accumulation de déchets, décharge sauvage, collecte non effectuée", 2},
	{"Éclairage public", "Lampadaire en panne ou absent, zone non éclairée la nuit", 2},
	{"Voirie", "Nid-de-poule, route dégradée, chaussée impraticable", 2},
	{"Inondation", "Eaux stagnantes, caniveau bouché, quartier inondé", 3},
	{"Érosion", "Ravin, glissement de terrain menaçant des habitations", 3},
	{"Eau potable", "Coupure d'eau prolongée, fuite sur le réseau, borne-fontaine en panne", 3},
	{"Insécurité", "Zone dangereuse, agressions répétées, absence de patrouille", 3},
	{"Marché et commerce", "Occupation anarchique de la voie publique, étals insalubres", 1},
	{"Autre", "Tout autre problème urbain non couvert par les catégories ci-dessus", 1},
}

func seedProblemTypes(ctx context.Context, repo repository.ProblemTypeRepository) (int, error) {
	created := 0
	for _, seed := range problemTypes {
		_, err := repo.FindByName(ctx, seed.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrProblemTypeNotFound) {
			return created, errors.Wrapf(err, "failed to look up problem type %q", seed.name)
		}

		problemType := &entity.ProblemType{
			ID:            uuid.New(),
			Name:          seed.name,
			Description:   seed.description,
			PriorityLevel: seed.priorityLevel,
		}
		if err := repo.Create(ctx, problemType); err != nil {
			return created, errors.Wrapf(err, "failed to create problem type %q", seed.name)
		}
		created++
	}

	return created, nil
}
