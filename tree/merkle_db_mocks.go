// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.


package tree

import (
	context "context"
	reflect "reflect"

	common "github.com/Fantom-foundation/avmstate/common"
	witness "github.com/Fantom-foundation/avmstate/common/witness"
	gomock "go.uber.org/mock/gomock"
)

// MockMerkleDB is a mock of MerkleDB interface.
type MockMerkleDB struct {
	ctrl     *gomock.Controller
	recorder *MockMerkleDBMockRecorder
}

// MockMerkleDBMockRecorder is the mock recorder for MockMerkleDB.
type MockMerkleDBMockRecorder struct {
	mock *MockMerkleDB
}

// NewMockMerkleDB creates a new mock instance.
func NewMockMerkleDB(ctrl *gomock.Controller) *MockMerkleDB {
	mock := &MockMerkleDB{ctrl: ctrl}
	mock.recorder = &MockMerkleDBMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMerkleDB) EXPECT() *MockMerkleDBMockRecorder {
	return m.recorder
}

// GetLeafPreimage mocks base method.
func (m *MockMerkleDB) GetLeafPreimage(ctx context.Context, id TreeID, index uint64) (witness.IndexedLeaf, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLeafPreimage", ctx, id, index)
	ret0, _ := ret[0].(witness.IndexedLeaf)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetLeafPreimage indicates an expected call of GetLeafPreimage.
func (mr *MockMerkleDBMockRecorder) GetLeafPreimage(ctx, id, index any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLeafPreimage", reflect.TypeOf((*MockMerkleDB)(nil).GetLeafPreimage), ctx, id, index)
}

// GetLeafValue mocks base method.
func (m *MockMerkleDB) GetLeafValue(ctx context.Context, id TreeID, index uint64) (common.Field, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLeafValue", ctx, id, index)
	ret0, _ := ret[0].(common.Field)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetLeafValue indicates an expected call of GetLeafValue.
func (mr *MockMerkleDBMockRecorder) GetLeafValue(ctx, id, index any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLeafValue", reflect.TypeOf((*MockMerkleDB)(nil).GetLeafValue), ctx, id, index)
}

// GetPreviousValueIndex mocks base method.
func (m *MockMerkleDB) GetPreviousValueIndex(ctx context.Context, id TreeID, key common.Field) (uint64, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPreviousValueIndex", ctx, id, key)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetPreviousValueIndex indicates an expected call of GetPreviousValueIndex.
func (mr *MockMerkleDBMockRecorder) GetPreviousValueIndex(ctx, id, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPreviousValueIndex", reflect.TypeOf((*MockMerkleDB)(nil).GetPreviousValueIndex), ctx, id, key)
}

// GetSiblingPath mocks base method.
func (m *MockMerkleDB) GetSiblingPath(ctx context.Context, id TreeID, index uint64) (witness.SiblingPath, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetSiblingPath", ctx, id, index)
	ret0, _ := ret[0].(witness.SiblingPath)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetSiblingPath indicates an expected call of GetSiblingPath.
func (mr *MockMerkleDBMockRecorder) GetSiblingPath(ctx, id, index any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetSiblingPath", reflect.TypeOf((*MockMerkleDB)(nil).GetSiblingPath), ctx, id, index)
}

// GetTreeInfo mocks base method.
func (m *MockMerkleDB) GetTreeInfo(ctx context.Context, id TreeID) (TreeInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTreeInfo", ctx, id)
	ret0, _ := ret[0].(TreeInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTreeInfo indicates an expected call of GetTreeInfo.
func (mr *MockMerkleDBMockRecorder) GetTreeInfo(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTreeInfo", reflect.TypeOf((*MockMerkleDB)(nil).GetTreeInfo), ctx, id)
}
