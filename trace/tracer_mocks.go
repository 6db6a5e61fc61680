// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.


package trace

import (
	reflect "reflect"

	common "github.com/Fantom-foundation/avmstate/common"
	immutable "github.com/Fantom-foundation/avmstate/common/immutable"
	witness "github.com/Fantom-foundation/avmstate/common/witness"
	gomock "go.uber.org/mock/gomock"
)

// MockTracer is a mock of Tracer interface.
type MockTracer struct {
	ctrl     *gomock.Controller
	recorder *MockTracerMockRecorder
}

// MockTracerMockRecorder is the mock recorder for MockTracer.
type MockTracerMockRecorder struct {
	mock *MockTracer
}

// NewMockTracer creates a new mock instance.
func NewMockTracer(ctrl *gomock.Controller) *MockTracer {
	mock := &MockTracer{ctrl: ctrl}
	mock.recorder = &MockTracerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTracer) EXPECT() *MockTracerMockRecorder {
	return m.recorder
}

// Fork mocks base method.
func (m *MockTracer) Fork() Tracer {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Fork")
	ret0, _ := ret[0].(Tracer)
	return ret0
}

// Fork indicates an expected call of Fork.
func (mr *MockTracerMockRecorder) Fork() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Fork", reflect.TypeOf((*MockTracer)(nil).Fork))
}

// Merge mocks base method.
func (m *MockTracer) Merge(child Tracer, reverted bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Merge", child, reverted)
	ret0, _ := ret[0].(error)
	return ret0
}

// Merge indicates an expected call of Merge.
func (mr *MockTracerMockRecorder) Merge(child, reverted any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Merge", reflect.TypeOf((*MockTracer)(nil).Merge), child, reverted)
}

// NoteHashCount mocks base method.
func (m *MockTracer) NoteHashCount() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NoteHashCount")
	ret0, _ := ret[0].(uint64)
	return ret0
}

// NoteHashCount indicates an expected call of NoteHashCount.
func (mr *MockTracerMockRecorder) NoteHashCount() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NoteHashCount", reflect.TypeOf((*MockTracer)(nil).NoteHashCount))
}

// TraceEnqueuedCall mocks base method.
func (m *MockTracer) TraceEnqueuedCall(request common.PublicCallRequest, calldata []common.Field, reverted bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceEnqueuedCall", request, calldata, reverted)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceEnqueuedCall indicates an expected call of TraceEnqueuedCall.
func (mr *MockTracerMockRecorder) TraceEnqueuedCall(request, calldata, reverted any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceEnqueuedCall", reflect.TypeOf((*MockTracer)(nil).TraceEnqueuedCall), request, calldata, reverted)
}

// TraceGetBytecode mocks base method.
func (m *MockTracer) TraceGetBytecode(contract common.Address, exists bool, bytecode immutable.Bytes, instance *common.ContractInstance, class *common.ContractClassPreimage, hints witness.ContractHints) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceGetBytecode", contract, exists, bytecode, instance, class, hints)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceGetBytecode indicates an expected call of TraceGetBytecode.
func (mr *MockTracerMockRecorder) TraceGetBytecode(contract, exists, bytecode, instance, class, hints any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceGetBytecode", reflect.TypeOf((*MockTracer)(nil).TraceGetBytecode), contract, exists, bytecode, instance, class, hints)
}

// TraceGetContractInstance mocks base method.
func (m *MockTracer) TraceGetContractInstance(contract common.Address, exists bool, instance *common.ContractInstance, hints witness.ContractHints) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceGetContractInstance", contract, exists, instance, hints)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceGetContractInstance indicates an expected call of TraceGetContractInstance.
func (mr *MockTracerMockRecorder) TraceGetContractInstance(contract, exists, instance, hints any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceGetContractInstance", reflect.TypeOf((*MockTracer)(nil).TraceGetContractInstance), contract, exists, instance, hints)
}

// TraceL1ToL2MessageCheck mocks base method.
func (m *MockTracer) TraceL1ToL2MessageCheck(contract common.Address, msgHash common.Field, leafIndex uint64, exists bool, path witness.SiblingPath) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceL1ToL2MessageCheck", contract, msgHash, leafIndex, exists, path)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceL1ToL2MessageCheck indicates an expected call of TraceL1ToL2MessageCheck.
func (mr *MockTracerMockRecorder) TraceL1ToL2MessageCheck(contract, msgHash, leafIndex, exists, path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceL1ToL2MessageCheck", reflect.TypeOf((*MockTracer)(nil).TraceL1ToL2MessageCheck), contract, msgHash, leafIndex, exists, path)
}

// TraceNewL2ToL1Message mocks base method.
func (m *MockTracer) TraceNewL2ToL1Message(contract common.Address, recipient common.Field, content common.Field) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceNewL2ToL1Message", contract, recipient, content)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceNewL2ToL1Message indicates an expected call of TraceNewL2ToL1Message.
func (mr *MockTracerMockRecorder) TraceNewL2ToL1Message(contract, recipient, content any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceNewL2ToL1Message", reflect.TypeOf((*MockTracer)(nil).TraceNewL2ToL1Message), contract, recipient, content)
}

// TraceNewNoteHash mocks base method.
func (m *MockTracer) TraceNewNoteHash(uniqueNoteHash common.Field, leafIndex uint64, path witness.SiblingPath) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceNewNoteHash", uniqueNoteHash, leafIndex, path)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceNewNoteHash indicates an expected call of TraceNewNoteHash.
func (mr *MockTracerMockRecorder) TraceNewNoteHash(uniqueNoteHash, leafIndex, path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceNewNoteHash", reflect.TypeOf((*MockTracer)(nil).TraceNewNoteHash), uniqueNoteHash, leafIndex, path)
}

// TraceNewNullifier mocks base method.
func (m *MockTracer) TraceNewNullifier(siloedNullifier common.Field, hint witness.NullifierWriteHint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceNewNullifier", siloedNullifier, hint)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceNewNullifier indicates an expected call of TraceNewNullifier.
func (mr *MockTracerMockRecorder) TraceNewNullifier(siloedNullifier, hint any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceNewNullifier", reflect.TypeOf((*MockTracer)(nil).TraceNewNullifier), siloedNullifier, hint)
}

// TraceNoteHashCheck mocks base method.
func (m *MockTracer) TraceNoteHashCheck(contract common.Address, noteHash common.Field, leafIndex uint64, exists bool, path witness.SiblingPath) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceNoteHashCheck", contract, noteHash, leafIndex, exists, path)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceNoteHashCheck indicates an expected call of TraceNoteHashCheck.
func (mr *MockTracerMockRecorder) TraceNoteHashCheck(contract, noteHash, leafIndex, exists, path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceNoteHashCheck", reflect.TypeOf((*MockTracer)(nil).TraceNoteHashCheck), contract, noteHash, leafIndex, exists, path)
}

// TraceNullifierCheck mocks base method.
func (m *MockTracer) TraceNullifierCheck(siloedNullifier common.Field, exists bool, hint witness.NullifierReadHint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TraceNullifierCheck", siloedNullifier, exists, hint)
	ret0, _ := ret[0].(error)
	return ret0
}

// TraceNullifierCheck indicates an expected call of TraceNullifierCheck.
func (mr *MockTracerMockRecorder) TraceNullifierCheck(siloedNullifier, exists, hint any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TraceNullifierCheck", reflect.TypeOf((*MockTracer)(nil).TraceNullifierCheck), siloedNullifier, exists, hint)
}

// TracePublicLog mocks base method.
func (m *MockTracer) TracePublicLog(contract common.Address, fields []common.Field) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TracePublicLog", contract, fields)
	ret0, _ := ret[0].(error)
	return ret0
}

// TracePublicLog indicates an expected call of TracePublicLog.
func (mr *MockTracerMockRecorder) TracePublicLog(contract, fields any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TracePublicLog", reflect.TypeOf((*MockTracer)(nil).TracePublicLog), contract, fields)
}

// TracePublicStorageRead mocks base method.
func (m *MockTracer) TracePublicStorageRead(contract common.Address, slot common.Field, value common.Field, hint witness.PublicDataReadHint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TracePublicStorageRead", contract, slot, value, hint)
	ret0, _ := ret[0].(error)
	return ret0
}

// TracePublicStorageRead indicates an expected call of TracePublicStorageRead.
func (mr *MockTracerMockRecorder) TracePublicStorageRead(contract, slot, value, hint any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TracePublicStorageRead", reflect.TypeOf((*MockTracer)(nil).TracePublicStorageRead), contract, slot, value, hint)
}

// TracePublicStorageWrite mocks base method.
func (m *MockTracer) TracePublicStorageWrite(contract common.Address, slot common.Field, value common.Field, protocolWrite bool, hint witness.PublicDataWriteHint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TracePublicStorageWrite", contract, slot, value, protocolWrite, hint)
	ret0, _ := ret[0].(error)
	return ret0
}

// TracePublicStorageWrite indicates an expected call of TracePublicStorageWrite.
func (mr *MockTracerMockRecorder) TracePublicStorageWrite(contract, slot, value, protocolWrite, hint any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TracePublicStorageWrite", reflect.TypeOf((*MockTracer)(nil).TracePublicStorageWrite), contract, slot, value, protocolWrite, hint)
}
