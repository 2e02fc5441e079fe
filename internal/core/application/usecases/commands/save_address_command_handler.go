package commands

import (
	"context"
)

// SaveAddressCommandHandler appends an address to the buyer's address book.
// Saving an address equal to an already saved one is a no-op.
type SaveAddressCommandHandler struct {
	uowFactory AddressBookUoWFactory
}

// NewSaveAddressCommandHandler creates the address-book save handler.
func NewSaveAddressCommandHandler(uowFactory AddressBookUoWFactory) SaveAddressCommandHandler {
	return SaveAddressCommandHandler{uowFactory: uowFactory}
}

// Handle stores the address.
func (h *SaveAddressCommandHandler) Handle(ctx context.Context, cmd SaveAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AddressBookRepository().Add(ctx, cmd.BuyerID(), cmd.Address()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
