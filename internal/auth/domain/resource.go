package domain

// ResourceKind enumerates the resource types subject to ownership checks.
// The set is closed: adding a kind means adding a constant here and one
// finder entry in the registry.
type ResourceKind string

const (
	KindBook   ResourceKind = "book"
	KindReview ResourceKind = "review"
)

// OwnedResource is any entity with exactly one owning principal. The owner
// is immutable after creation; there is no transfer operation.
type OwnedResource interface {
	ResourceOwner() string
}
