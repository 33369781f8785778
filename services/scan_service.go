// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/l3montree-dev/contentguard/database/models"
	"github.com/l3montree-dev/contentguard/detection"
	"github.com/l3montree-dev/contentguard/dtos"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/l3montree-dev/contentguard/utils"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// SnapshotProvider hands out the rule snapshot a scan runs against.
type SnapshotProvider interface {
	Current() (*detection.Snapshot, error)
}

type scanService struct {
	registry             SnapshotProvider
	scanner              *detection.Scanner
	scanRecordRepository shared.ScanRecordRepository
	violationRepository  shared.ViolationRepository
}

func NewScanService(registry SnapshotProvider, scanner *detection.Scanner, scanRecordRepository shared.ScanRecordRepository, violationRepository shared.ViolationRepository) *scanService {
	return &scanService{
		registry:             registry,
		scanner:              scanner,
		scanRecordRepository: scanRecordRepository,
		violationRepository:  violationRepository,
	}
}

func scanContextOf(content shared.ContentRef) *detection.ScanContext {
	scanCtx := &detection.ScanContext{Model: content.Kind(), Size: len(content.Text())}
	if named, ok := content.(shared.FieldNamer); ok {
		scanCtx.FieldName = named.Field()
	}
	return scanCtx
}

func violationFromMatch(scanRecordID uuid.UUID, m detection.RuleMatch) models.Violation {
	return models.Violation{
		ScanRecordID:    scanRecordID,
		RuleID:          m.RuleID,
		RuleName:        m.RuleName,
		Severity:        m.Severity,
		RedactedSnippet: m.Snippet,
		MatchCount:      m.MatchCount,
		Confidence:      m.Confidence,
		ContextBoosted:  m.ContextBoosted,
		StartOffset:     utils.Ptr(m.StartOffset),
		EndOffset:       utils.Ptr(m.EndOffset),
	}
}

// ScanAndStore scans the content against the snapshot current at the start of the call and
// persists the record together with its violations. A content which cannot be scanned is
// stored as a failed record and is not an error.
func (s *scanService) ScanAndStore(ctx context.Context, content shared.ContentRef, ownerID string, trigger dtos.ScanTrigger) (shared.ScanResult, error) {
	ctx, span := monitoring.Tracer().Start(ctx, "scanService.ScanAndStore")
	defer span.End()
	span.SetAttributes(attribute.String("content.kind", content.Kind()), attribute.String("content.id", content.ID()))

	start := time.Now()
	snapshot, err := s.registry.Current()
	if err != nil {
		return shared.ScanResult{}, errors.Wrap(err, "could not get detection rules")
	}

	text := content.Text()
	record := models.ScanRecord{
		Model:       models.Model{ID: uuid.New()},
		ContentKind: content.Kind(),
		ContentID:   content.ID(),
		ContentHash: utils.HashString(text),
		OwnerID:     ownerID,
		ScanTrigger: trigger,
	}

	out, scanErr := s.scanner.Scan(snapshot, detection.ScanInput{Text: text, Context: scanContextOf(content)})
	if scanErr != nil {
		record.Status = dtos.ScanStatusFailed
		record.Error = utils.Ptr(scanErr.Error())
		record.ContentLength = utf8.RuneCountInString(text)
		record.ProcessingTime = time.Since(start).Milliseconds()
		if err := s.scanRecordRepository.Create(nil, &record); err != nil {
			return shared.ScanResult{}, errors.Wrap(err, "could not store failed scan")
		}
		slog.Warn("scan failed", "contentKind", record.ContentKind, "contentId", record.ContentID, "err", scanErr)
		monitoring.ScansTotal.WithLabelValues(string(record.Status)).Inc()
		return shared.ScanResult{Record: record}, nil
	}

	assessment := detection.Score(out.Matches, out.ContentLength)
	violations := make([]models.Violation, 0, len(out.Matches))
	matchedRuleIDs := make([]string, 0, len(out.Matches))
	for _, m := range out.Matches {
		violations = append(violations, violationFromMatch(record.ID, m))
		matchedRuleIDs = append(matchedRuleIDs, m.RuleID.String())
	}

	record.Status = dtos.ScanStatusCompleted
	if out.Truncated {
		record.Status = dtos.ScanStatusPartial
	}
	record.ContentLength = out.ContentLength
	record.ViolationCount = len(violations)
	record.HighestSeverity = assessment.HighestSeverity
	record.RiskScore = assessment.Score
	record.MatchedRuleIDs = matchedRuleIDs
	record.ProcessingTime = time.Since(start).Milliseconds()

	err = s.scanRecordRepository.Transaction(func(tx shared.DB) error {
		if err := s.scanRecordRepository.Create(tx, &record); err != nil {
			return fmt.Errorf("could not store scan record: %w", err)
		}
		if err := s.violationRepository.CreateBatch(tx, violations); err != nil {
			return fmt.Errorf("could not store violations: %w", err)
		}
		return nil
	})
	if err != nil {
		return shared.ScanResult{}, err
	}

	monitoring.ScanDuration.Observe(time.Since(start).Seconds())
	monitoring.ScansTotal.WithLabelValues(string(record.Status)).Inc()
	for _, v := range violations {
		monitoring.ViolationsTotal.WithLabelValues(string(v.Severity)).Inc()
	}

	record.Violations = violations
	return shared.ScanResult{Record: record, Violations: violations, Truncated: out.Truncated}, nil
}

func (s *scanService) GetScan(id uuid.UUID) (models.ScanRecord, error) {
	record, err := s.scanRecordRepository.ReadWithViolations(id)
	if err != nil {
		return record, translateNotFound(err, "scan", id)
	}
	return record, nil
}

func (s *scanService) ListScansByContent(contentKind, contentID string) ([]models.ScanRecord, error) {
	return s.scanRecordRepository.FindByContent(contentKind, contentID)
}

// ResolveViolation resolves exactly once. A second call returns shared.ErrAlreadyResolved.
func (s *scanService) ResolveViolation(id uuid.UUID, resolver string, kind dtos.ResolutionKind, notes string) (models.Violation, error) {
	if !kind.IsValid() {
		return models.Violation{}, fmt.Errorf("unknown resolution kind %q", kind)
	}
	if _, err := s.violationRepository.Read(id); err != nil {
		return models.Violation{}, translateNotFound(err, "violation", id)
	}

	ok, err := s.violationRepository.MarkResolved(nil, id, resolver, kind, notes, time.Now())
	if err != nil {
		return models.Violation{}, errors.Wrap(err, "could not resolve violation")
	}
	if !ok {
		return models.Violation{}, shared.ErrAlreadyResolved
	}
	return s.violationRepository.Read(id)
}

func (s *scanService) ListUnresolvedViolations(scanID uuid.UUID) ([]models.Violation, error) {
	if _, err := s.scanRecordRepository.Read(scanID); err != nil {
		return nil, translateNotFound(err, "scan", scanID)
	}
	return s.violationRepository.FindUnresolvedByScanRecord(nil, scanID)
}
