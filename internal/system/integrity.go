package system

import (
	"context"
	"fmt"

	apperrors "planetary-server/internal/shared/errors"
)

// CheckIntegrity reads all three families and reports references that do not
// resolve. It never modifies data.
func (s *Service) CheckIntegrity(ctx context.Context) (*IntegrityReport, error) {
	logger := s.logger.With("component", "system_service", "operation", "check_integrity")

	bodies, err := s.bodies.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bodies: %w", err)
	}
	allSettings, err := s.settings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	systems, err := s.systems.ListAll(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load planetary systems", err)
	}

	bodyIDs := make(map[string]struct{}, len(bodies))
	for _, b := range bodies {
		bodyIDs[b.ID] = struct{}{}
	}
	settingsIDs := make(map[string]struct{}, len(allSettings))
	for _, st := range allSettings {
		settingsIDs[st.ID] = struct{}{}
	}

	report := &IntegrityReport{
		BodiesChecked:          len(bodies),
		SystemsChecked:         len(systems),
		DanglingParents:        []DanglingReference{},
		UnknownBodyTypes:       []UnknownBodyType{},
		DanglingSystemBodies:   []DanglingReference{},
		DanglingSystemSettings: []DanglingReference{},
	}

	for _, b := range bodies {
		if b.Parent != nil {
			if _, ok := bodyIDs[*b.Parent]; !ok {
				report.DanglingParents = append(report.DanglingParents, DanglingReference{ID: b.ID, Reference: *b.Parent})
			}
		}
		if !b.BodyType.IsValid() {
			report.UnknownBodyTypes = append(report.UnknownBodyTypes, UnknownBodyType{ID: b.ID, BodyType: string(b.BodyType)})
		}
	}

	for _, sys := range systems {
		for _, bodyID := range sys.Bodies {
			if _, ok := bodyIDs[bodyID]; !ok {
				report.DanglingSystemBodies = append(report.DanglingSystemBodies, DanglingReference{ID: sys.ID, Reference: bodyID})
			}
		}
		if sys.Settings != nil {
			if _, ok := settingsIDs[*sys.Settings]; !ok {
				report.DanglingSystemSettings = append(report.DanglingSystemSettings, DanglingReference{ID: sys.ID, Reference: *sys.Settings})
			}
		}
		if sys.IsDefault {
			report.DefaultSystems++
		}
	}

	report.OK = len(report.DanglingParents) == 0 &&
		len(report.UnknownBodyTypes) == 0 &&
		len(report.DanglingSystemBodies) == 0 &&
		len(report.DanglingSystemSettings) == 0 &&
		report.DefaultSystems <= 1

	if report.OK {
		logger.Debug("Integrity check passed", "bodies", len(bodies), "systems", len(systems))
	} else {
		logger.Warn("Integrity check found problems",
			"dangling_parents", len(report.DanglingParents),
			"unknown_body_types", len(report.UnknownBodyTypes),
			"dangling_system_bodies", len(report.DanglingSystemBodies),
			"dangling_system_settings", len(report.DanglingSystemSettings),
			"default_systems", report.DefaultSystems)
	}

	return report, nil
}
