package ethtypes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reason is the host runtime's tag for why an account balance changed.
type Reason int32

const (
	ReasonUnknown              Reason = 0
	ReasonRewardMineUncle      Reason = 1
	ReasonRewardMineBlock      Reason = 2
	ReasonDaoRefundContract    Reason = 3
	ReasonDaoAdjustBalance     Reason = 4
	ReasonTransfer             Reason = 5
	ReasonGenesisBalance       Reason = 6
	ReasonGasBuy               Reason = 7
	ReasonRewardTransactionFee Reason = 8
	ReasonGasRefund            Reason = 9
	ReasonTouchAccount         Reason = 10
	ReasonSuicideRefund        Reason = 11
	ReasonCallBalanceOverride  Reason = 12
	ReasonSuicideWithdraw      Reason = 13
	ReasonRewardFeeReset       Reason = 14
	ReasonBurn                 Reason = 15
	ReasonWithdrawal           Reason = 16
)

var reasonNames = map[Reason]string{
	ReasonUnknown:              "REASON_UNKNOWN",
	ReasonRewardMineUncle:      "REASON_REWARD_MINE_UNCLE",
	ReasonRewardMineBlock:      "REASON_REWARD_MINE_BLOCK",
	ReasonDaoRefundContract:    "REASON_DAO_REFUND_CONTRACT",
	ReasonDaoAdjustBalance:     "REASON_DAO_ADJUST_BALANCE",
	ReasonTransfer:             "REASON_TRANSFER",
	ReasonGenesisBalance:       "REASON_GENESIS_BALANCE",
	ReasonGasBuy:               "REASON_GAS_BUY",
	ReasonRewardTransactionFee: "REASON_REWARD_TRANSACTION_FEE",
	ReasonGasRefund:            "REASON_GAS_REFUND",
	ReasonTouchAccount:         "REASON_TOUCH_ACCOUNT",
	ReasonSuicideRefund:        "REASON_SUICIDE_REFUND",
	ReasonCallBalanceOverride:  "REASON_CALL_BALANCE_OVERRIDE",
	ReasonSuicideWithdraw:      "REASON_SUICIDE_WITHDRAW",
	ReasonRewardFeeReset:       "REASON_REWARD_FEE_RESET",
	ReasonBurn:                 "REASON_BURN",
	ReasonWithdrawal:           "REASON_WITHDRAWAL",
}

// IsKnown reports whether r is one of the reason codes the host runtime defines.
func (r Reason) IsKnown() bool {
	_, ok := reasonNames[r]
	return ok
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REASON_%d", int32(r))
}

// UnmarshalJSON accepts either the numeric code or the enum name
// (with or without the REASON_ prefix).
func (r *Reason) UnmarshalJSON(data []byte) error {
	var code int32
	if err := json.Unmarshal(data, &code); err == nil {
		*r = Reason(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid balance change reason %s", string(data))
	}

	name = strings.ToUpper(name)
	if !strings.HasPrefix(name, "REASON_") {
		name = "REASON_" + name
	}
	for reason, reasonName := range reasonNames {
		if reasonName == name {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("unknown balance change reason %q", name)
}

// CallType is the kind of EVM call frame.
type CallType int32

const (
	CallTypeUnspecified CallType = 0
	CallTypeCall        CallType = 1
	CallTypeCallcode    CallType = 2
	CallTypeDelegate    CallType = 3
	CallTypeStatic      CallType = 4
	CallTypeCreate      CallType = 5
)

var callTypeNames = map[CallType]string{
	CallTypeUnspecified: "UNSPECIFIED",
	CallTypeCall:        "CALL",
	CallTypeCallcode:    "CALLCODE",
	CallTypeDelegate:    "DELEGATE",
	CallTypeStatic:      "STATIC",
	CallTypeCreate:      "CREATE",
}

func (c CallType) String() string {
	if name, ok := callTypeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CALLTYPE_%d", int32(c))
}

// UnmarshalJSON accepts either the numeric code or the call type name.
// "DELEGATECALL" and "STATICCALL" as emitted by callTracer are accepted too.
func (c *CallType) UnmarshalJSON(data []byte) error {
	var code int32
	if err := json.Unmarshal(data, &code); err == nil {
		*c = CallType(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid call type %s", string(data))
	}

	switch strings.ToUpper(name) {
	case "DELEGATECALL":
		*c = CallTypeDelegate
		return nil
	case "STATICCALL":
		*c = CallTypeStatic
		return nil
	case "CREATE2":
		*c = CallTypeCreate
		return nil
	}
	for callType, callTypeName := range callTypeNames {
		if callTypeName == strings.ToUpper(name) {
			*c = callType
			return nil
		}
	}
	return fmt.Errorf("unknown call type %q", name)
}
