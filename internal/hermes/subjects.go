package hermes

import "time"

const (
	SubjectWeightsUpdated = "verdant.weights.updated"
	SubjectAllSuppliers   = "verdant.supplier.>"

	StreamName   = "VERDANT_EVENTS"
	StreamMaxAge = 30 * 24 * time.Hour
)

// Supplier lifecycle subjects
func SubjectSupplierCreated(id string) string { return "verdant.supplier." + id + ".created" }
func SubjectSupplierUpdated(id string) string { return "verdant.supplier." + id + ".updated" }
func SubjectSupplierDeleted(id string) string { return "verdant.supplier." + id + ".deleted" }
