package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrStaleSave 过期保存：该草稿已有更新的保存完成，本次结果被丢弃
var ErrStaleSave = errors.New("保存结果已过期，已有更新的保存完成")
