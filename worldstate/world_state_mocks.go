// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.


package worldstate

import (
	context "context"
	reflect "reflect"

	common "github.com/Fantom-foundation/avmstate/common"
	tree "github.com/Fantom-foundation/avmstate/tree"
	gomock "go.uber.org/mock/gomock"
)

// MockWorldStateDB is a mock of WorldStateDB interface.
type MockWorldStateDB struct {
	ctrl     *gomock.Controller
	recorder *MockWorldStateDBMockRecorder
}

// MockWorldStateDBMockRecorder is the mock recorder for MockWorldStateDB.
type MockWorldStateDBMockRecorder struct {
	mock *MockWorldStateDB
}

// NewMockWorldStateDB creates a new mock instance.
func NewMockWorldStateDB(ctrl *gomock.Controller) *MockWorldStateDB {
	mock := &MockWorldStateDB{ctrl: ctrl}
	mock.recorder = &MockWorldStateDBMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockWorldStateDB) EXPECT() *MockWorldStateDBMockRecorder {
	return m.recorder
}

// GetBytecodeCommitment mocks base method.
func (m *MockWorldStateDB) GetBytecodeCommitment(ctx context.Context, classID common.Field) (common.Field, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBytecodeCommitment", ctx, classID)
	ret0, _ := ret[0].(common.Field)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetBytecodeCommitment indicates an expected call of GetBytecodeCommitment.
func (mr *MockWorldStateDBMockRecorder) GetBytecodeCommitment(ctx, classID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBytecodeCommitment", reflect.TypeOf((*MockWorldStateDB)(nil).GetBytecodeCommitment), ctx, classID)
}

// GetCommitmentValue mocks base method.
func (m *MockWorldStateDB) GetCommitmentValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCommitmentValue", ctx, leafIndex)
	ret0, _ := ret[0].(common.Field)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetCommitmentValue indicates an expected call of GetCommitmentValue.
func (mr *MockWorldStateDBMockRecorder) GetCommitmentValue(ctx, leafIndex any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCommitmentValue", reflect.TypeOf((*MockWorldStateDB)(nil).GetCommitmentValue), ctx, leafIndex)
}

// GetContractClass mocks base method.
func (m *MockWorldStateDB) GetContractClass(ctx context.Context, classID common.Field) (*common.ContractClass, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetContractClass", ctx, classID)
	ret0, _ := ret[0].(*common.ContractClass)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetContractClass indicates an expected call of GetContractClass.
func (mr *MockWorldStateDBMockRecorder) GetContractClass(ctx, classID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetContractClass", reflect.TypeOf((*MockWorldStateDB)(nil).GetContractClass), ctx, classID)
}

// GetContractInstance mocks base method.
func (m *MockWorldStateDB) GetContractInstance(ctx context.Context, address common.Address) (*common.ContractInstance, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetContractInstance", ctx, address)
	ret0, _ := ret[0].(*common.ContractInstance)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetContractInstance indicates an expected call of GetContractInstance.
func (mr *MockWorldStateDBMockRecorder) GetContractInstance(ctx, address any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetContractInstance", reflect.TypeOf((*MockWorldStateDB)(nil).GetContractInstance), ctx, address)
}

// GetL1ToL2LeafValue mocks base method.
func (m *MockWorldStateDB) GetL1ToL2LeafValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetL1ToL2LeafValue", ctx, leafIndex)
	ret0, _ := ret[0].(common.Field)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetL1ToL2LeafValue indicates an expected call of GetL1ToL2LeafValue.
func (mr *MockWorldStateDBMockRecorder) GetL1ToL2LeafValue(ctx, leafIndex any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetL1ToL2LeafValue", reflect.TypeOf((*MockWorldStateDB)(nil).GetL1ToL2LeafValue), ctx, leafIndex)
}

// GetMerkleInterface mocks base method.
func (m *MockWorldStateDB) GetMerkleInterface() tree.MerkleDB {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMerkleInterface")
	ret0, _ := ret[0].(tree.MerkleDB)
	return ret0
}

// GetMerkleInterface indicates an expected call of GetMerkleInterface.
func (mr *MockWorldStateDBMockRecorder) GetMerkleInterface() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMerkleInterface", reflect.TypeOf((*MockWorldStateDB)(nil).GetMerkleInterface))
}

// GetNullifierIndex mocks base method.
func (m *MockWorldStateDB) GetNullifierIndex(ctx context.Context, siloedNullifier common.Field) (uint64, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetNullifierIndex", ctx, siloedNullifier)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetNullifierIndex indicates an expected call of GetNullifierIndex.
func (mr *MockWorldStateDBMockRecorder) GetNullifierIndex(ctx, siloedNullifier any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetNullifierIndex", reflect.TypeOf((*MockWorldStateDB)(nil).GetNullifierIndex), ctx, siloedNullifier)
}

// StorageRead mocks base method.
func (m *MockWorldStateDB) StorageRead(ctx context.Context, contract common.Address, slot common.Field) (common.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StorageRead", ctx, contract, slot)
	ret0, _ := ret[0].(common.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StorageRead indicates an expected call of StorageRead.
func (mr *MockWorldStateDBMockRecorder) StorageRead(ctx, contract, slot any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StorageRead", reflect.TypeOf((*MockWorldStateDB)(nil).StorageRead), ctx, contract, slot)
}

// MockDebugFunctionNames is a mock of DebugFunctionNames interface.
type MockDebugFunctionNames struct {
	ctrl     *gomock.Controller
	recorder *MockDebugFunctionNamesMockRecorder
}

// MockDebugFunctionNamesMockRecorder is the mock recorder for MockDebugFunctionNames.
type MockDebugFunctionNamesMockRecorder struct {
	mock *MockDebugFunctionNames
}

// NewMockDebugFunctionNames creates a new mock instance.
func NewMockDebugFunctionNames(ctrl *gomock.Controller) *MockDebugFunctionNames {
	mock := &MockDebugFunctionNames{ctrl: ctrl}
	mock.recorder = &MockDebugFunctionNamesMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDebugFunctionNames) EXPECT() *MockDebugFunctionNamesMockRecorder {
	return m.recorder
}

// GetDebugFunctionName mocks base method.
func (m *MockDebugFunctionNames) GetDebugFunctionName(ctx context.Context, address common.Address, selector common.Field) (string, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDebugFunctionName", ctx, address, selector)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetDebugFunctionName indicates an expected call of GetDebugFunctionName.
func (mr *MockDebugFunctionNamesMockRecorder) GetDebugFunctionName(ctx, address, selector any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDebugFunctionName", reflect.TypeOf((*MockDebugFunctionNames)(nil).GetDebugFunctionName), ctx, address, selector)
}
