package party

import "mikkoo/internal/common"

// Kind discriminates which side of the marketplace an owner reference points
// at. It replaces runtime type inspection with an explicit tag.
type Kind string

const (
	KindProvider  Kind = "provider"
	KindRequester Kind = "requester"
)

// OwnerRef is a tagged reference to a provider or requester.
type OwnerRef struct {
	Kind Kind        `json:"kind"`
	ID   common.UUID `json:"id"`
}

func Provider(id common.UUID) OwnerRef {
	return OwnerRef{Kind: KindProvider, ID: id}
}

func Requester(id common.UUID) OwnerRef {
	return OwnerRef{Kind: KindRequester, ID: id}
}
