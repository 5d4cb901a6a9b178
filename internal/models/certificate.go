package models

import "time"

// CertificateVersion is the current certificate format version.
const CertificateVersion = "2.0"

// CertificateMaxAge is the freshness window measured from ValidationTimestamp.
// Enforcement at save time is the responsibility of the Save collaborator.
const CertificateMaxAge = 5 * time.Minute

// ValidationStatus is the overall outcome of a validation pass.
type ValidationStatus string

// Validation status constants.
const (
	StatusApproved    ValidationStatus = "APPROVED"
	StatusNeedsReview ValidationStatus = "NEEDS_REVIEW"
	StatusRejected    ValidationStatus = "REJECTED"
)

// ChecksPerformed records which checks ran during a validation pass.
// All six are true for every completed pass; the struct exists so the
// certificate is explicit about its own coverage.
type ChecksPerformed struct {
	VaultCompliance   bool `json:"vault_compliance"`
	AvoidExclusion    bool `json:"avoid_exclusion"`
	PageTypeRules     bool `json:"page_type_rules"`
	SendTypeDiversity bool `json:"send_type_diversity"`
	FlyerRequirement  bool `json:"flyer_requirement"`
	QualityScoring    bool `json:"quality_scoring"`
}

// ValidationCertificate is the immutable, hash-stamped record attesting a
// schedule's compliance and quality at a point in time. The three hashes
// prove which schedule and which business-data snapshots the validation ran
// against. Never mutated after creation.
type ValidationCertificate struct {
	CertificateVersion    string           `json:"certificate_version"`
	CreatorID             string           `json:"creator_id"`
	ValidationTimestamp   time.Time        `json:"validation_timestamp"`
	ScheduleHash          string           `json:"schedule_hash"`
	AvoidTypesHash        string           `json:"avoid_types_hash"`
	VaultTypesHash        string           `json:"vault_types_hash"`
	ItemsValidated        int              `json:"items_validated"`
	QualityScore          int              `json:"quality_score"`
	ValidationStatus      ValidationStatus `json:"validation_status"`
	ChecksPerformed       ChecksPerformed  `json:"checks_performed"`
	ViolationsFound       map[string]int   `json:"violations_found"`
	UpstreamProofVerified bool             `json:"upstream_proof_verified"`
	CertificateSignature  string           `json:"certificate_signature"`
}
