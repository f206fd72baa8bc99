package handlers

import (
	"strconv"

	"github.com/bcgsc/mavis-config/pkg/observability"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/gofiber/fiber/v3"
)

// ListStages handles GET /api/v1/stages
func (s *Server) ListStages(c fiber.Ctx) error {
	stages := make([]StageInfo, 0, stage.Subcommands.Len())

	for _, st := range stage.Subcommands.Values() {
		name, err := stage.Subcommands.Reverse(st)
		if err != nil {
			return err
		}

		upstream, err := s.graph.Upstream(st)
		if err != nil {
			return err
		}

		downstream, err := s.graph.Downstream(st)
		if err != nil {
			return err
		}

		stages = append(stages, StageInfo{
			Name:       name,
			Value:      st.String(),
			Upstream:   stageValues(upstream),
			Downstream: stageValues(downstream),
		})
	}

	observability.RecordAPIRequest("stages", strconv.Itoa(fiber.StatusOK))

	return c.Status(fiber.StatusOK).JSON(StagesResponse{
		Stages: stages,
		Total:  len(stages),
	})
}

func stageValues(stages []stage.Stage) []string {
	values := make([]string, 0, len(stages))
	for _, st := range stages {
		values = append(values, st.String())
	}
	return values
}
