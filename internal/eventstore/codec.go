package eventstore

import (
	"encoding/json"
	"fmt"

	"github.com/api-sage/bank-ledger/internal/domain"
)

// MarshalEvent serializes an event into its stored (kind, payload) form.
func MarshalEvent(evt domain.Event) (kind string, payload []byte, err error) {
	payload, err = json.Marshal(evt)
	if err != nil {
		return "", nil, fmt.Errorf("marshal event %s: %w", evt.Kind(), err)
	}
	return string(evt.Kind()), payload, nil
}

// UnmarshalEvent reverses MarshalEvent. The kind set is closed: a row
// with an unknown kind is corrupt data, not an extension point.
func UnmarshalEvent(kind string, payload []byte) (domain.Event, error) {
	var evt domain.Event
	switch domain.EventKind(kind) {
	case domain.EventAccountCreated:
		evt = &domain.AccountCreated{}
	case domain.EventMoneyDeposited:
		evt = &domain.MoneyDeposited{}
	case domain.EventMoneyWithdrawn:
		evt = &domain.MoneyWithdrawn{}
	case domain.EventTransferSent:
		evt = &domain.TransferSent{}
	case domain.EventTransferReceived:
		evt = &domain.TransferReceived{}
	case domain.EventInterestCredited:
		evt = &domain.InterestCredited{}
	case domain.EventFeeCharged:
		evt = &domain.FeeCharged{}
	case domain.EventLimitUpdated:
		evt = &domain.LimitUpdated{}
	case domain.EventAccountClosed:
		evt = &domain.AccountClosed{}
	case domain.EventPeriodClosed:
		evt = &domain.PeriodClosed{}
	case domain.EventPeriodStarted:
		evt = &domain.PeriodStarted{}
	default:
		return nil, fmt.Errorf("unmarshal event: unknown kind %q", kind)
	}

	if err := json.Unmarshal(payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal event %s: %w", kind, err)
	}
	return deref(evt), nil
}

// deref returns the value form so stored events compare and type-switch
// the same way as freshly emitted ones.
func deref(evt domain.Event) domain.Event {
	switch e := evt.(type) {
	case *domain.AccountCreated:
		return *e
	case *domain.MoneyDeposited:
		return *e
	case *domain.MoneyWithdrawn:
		return *e
	case *domain.TransferSent:
		return *e
	case *domain.TransferReceived:
		return *e
	case *domain.InterestCredited:
		return *e
	case *domain.FeeCharged:
		return *e
	case *domain.LimitUpdated:
		return *e
	case *domain.AccountClosed:
		return *e
	case *domain.PeriodClosed:
		return *e
	case *domain.PeriodStarted:
		return *e
	default:
		return evt
	}
}
