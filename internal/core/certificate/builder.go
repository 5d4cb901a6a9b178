// Package certificate builds the deterministic, hash-stamped
// ValidationCertificate. The three hashes bind the certificate to the exact
// schedule and business-data snapshots the validation ran against, so a
// certificate can never be replayed against different data.
package certificate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"

	"github.com/example/sendgate/internal/models"
)

// canonicalItem is the stable serialization of a schedule item used for
// hashing. Only generator-produced fields participate; advisory fields like
// caption flags do not change the schedule identity.
type canonicalItem struct {
	SendTypeKey   string  `json:"send_type_key"`
	ContentType   string  `json:"content_type"`
	Category      string  `json:"category"`
	ScheduledDate string  `json:"scheduled_date"`
	ScheduledTime string  `json:"scheduled_time"`
	Price         float64 `json:"price"`
	FlyerRequired bool    `json:"flyer_required"`
}

// BuildInput carries everything a certificate attests to.
type BuildInput struct {
	Schedule              models.Schedule
	VaultTypes            []string // vault snapshot used during evaluation
	AvoidTypes            []string // AVOID-tier content types used during evaluation
	QualityScore          int
	Status                models.ValidationStatus
	Violations            []models.Violation // hard and soft, for the counts payload
	UpstreamProofVerified bool
}

// Builder stamps certificates. The clock is injected so tests can pin
// timestamps; production wiring passes time.Now.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a certificate builder using the given clock.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Build produces an immutable certificate for one validation pass.
// Identical (schedule, vault snapshot, avoid snapshot) inputs always yield
// identical hashes.
func (b *Builder) Build(in BuildInput) *models.ValidationCertificate {
	ts := b.now().UTC()
	scheduleHash := hashSchedule(in.Schedule.Items)

	violations := make(map[string]int)
	for _, v := range in.Violations {
		violations[v.Code]++
	}

	cert := &models.ValidationCertificate{
		CertificateVersion:  models.CertificateVersion,
		CreatorID:           in.Schedule.CreatorID,
		ValidationTimestamp: ts,
		ScheduleHash:        scheduleHash,
		AvoidTypesHash:      hashStringSet(in.AvoidTypes),
		VaultTypesHash:      hashStringSet(in.VaultTypes),
		ItemsValidated:      len(in.Schedule.Items),
		QualityScore:        in.QualityScore,
		ValidationStatus:    in.Status,
		ChecksPerformed: models.ChecksPerformed{
			VaultCompliance:   true,
			AvoidExclusion:    true,
			PageTypeRules:     true,
			SendTypeDiversity: true,
			FlyerRequirement:  true,
			QualityScoring:    true,
		},
		ViolationsFound:       violations,
		UpstreamProofVerified: in.UpstreamProofVerified,
		CertificateSignature:  signature(scheduleHash, ts),
	}

	return cert
}

// IsFresh reports whether a certificate is still inside its freshness
// window at the given time. maxAge <= 0 selects the standard 5-minute
// window. Enforcement at save time belongs to the Save collaborator.
func IsFresh(cert *models.ValidationCertificate, now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		maxAge = models.CertificateMaxAge
	}
	age := now.Sub(cert.ValidationTimestamp)
	return age >= 0 && age <= maxAge
}

// hashSchedule hashes a canonical, stably ordered serialization of the
// schedule items.
func hashSchedule(items []models.ScheduleItem) string {
	canonical := make([]canonicalItem, len(items))
	for i, item := range items {
		canonical[i] = canonicalItem{
			SendTypeKey:   item.SendTypeKey,
			ContentType:   item.ContentType,
			Category:      string(item.Category),
			ScheduledDate: item.ScheduledDate,
			ScheduledTime: item.ScheduledTime,
			Price:         item.Price,
			FlyerRequired: item.FlyerRequired,
		}
	}
	sort.Slice(canonical, func(i, j int) bool {
		a, b := canonical[i], canonical[j]
		if a.ScheduledDate != b.ScheduledDate {
			return a.ScheduledDate < b.ScheduledDate
		}
		if a.ScheduledTime != b.ScheduledTime {
			return a.ScheduledTime < b.ScheduledTime
		}
		if a.SendTypeKey != b.SendTypeKey {
			return a.SendTypeKey < b.SendTypeKey
		}
		return a.ContentType < b.ContentType
	})

	return sha256Hex(mustJSON(canonical))
}

// hashStringSet hashes a sorted copy of the list, so the hash identifies
// the set regardless of input order.
func hashStringSet(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return sha256Hex(mustJSON(sorted))
}

// signature derives the short opaque traceability identifier. Not a
// cryptographic authentication mechanism.
func signature(scheduleHash string, ts time.Time) string {
	sum := sha256.Sum256([]byte(scheduleHash + "|" + ts.Format(time.RFC3339Nano)))
	return "VCERT-" + hex.EncodeToString(sum[:])[:12]
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable for unmarshalable types, which the canonical
		// structs cannot contain.
		panic(err)
	}
	return data
}
