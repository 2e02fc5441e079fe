// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shiplabel/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// DraftRepoFactory provides access to the checkout-draft repository within a transaction.
	DraftRepoFactory interface {
		DraftRepository() ports.DraftRepository
	}

	// AddressBookRepoFactory provides access to the address-book repository within a transaction.
	AddressBookRepoFactory interface {
		AddressBookRepository() ports.AddressBookRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// DraftUoW manages transactions for draft-only operations.
	// Used when a command only writes or deletes resumption drafts.
	DraftUoW interface {
		TxManager
		DraftRepoFactory
	}

	// DraftUoWFactory creates new draft unit of work instances.
	DraftUoWFactory interface {
		Create() DraftUoW
	}

	// AddressBookUoW manages transactions for address-book operations.
	AddressBookUoW interface {
		TxManager
		AddressBookRepoFactory
	}

	// AddressBookUoWFactory creates new address-book unit of work instances.
	AddressBookUoWFactory interface {
		Create() AddressBookUoW
	}

	// PurchaseUoW manages the label-purchase transaction: the new shipment
	// row and the consumed resumption draft must commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   shipmentRepo := uow.ShipmentRepository()
	//   draftRepo := uow.DraftRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	PurchaseUoW interface {
		TxManager
		ShipmentRepoFactory
		DraftRepoFactory
	}

	// PurchaseUoWFactory creates new purchase unit of work instances.
	PurchaseUoWFactory interface {
		Create() PurchaseUoW
	}
)
