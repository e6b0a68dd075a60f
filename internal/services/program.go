package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/types"
)

//go:embed programs.yaml
var programCatalogYAML []byte

type ProgramService interface {
	List() []types.Program
	Get(id string) (types.Program, bool)
}

type programService struct {
	log      *logger.Logger
	programs []types.Program
	byID     map[string]types.Program
}

func NewProgramService(log *logger.Logger) (ProgramService, error) {
	var catalog struct {
		Programs []types.Program `yaml:"programs"`
	}
	if err := yaml.Unmarshal(programCatalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse program catalog: %w", err)
	}
	byID := make(map[string]types.Program, len(catalog.Programs))
	for _, p := range catalog.Programs {
		byID[p.ID] = p
	}
	return &programService{
		log:      log.With("service", "ProgramService"),
		programs: catalog.Programs,
		byID:     byID,
	}, nil
}

func (ps *programService) List() []types.Program {
	return ps.programs
}

func (ps *programService) Get(id string) (types.Program, bool) {
	p, ok := ps.byID[id]
	return p, ok
}
