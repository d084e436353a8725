package locker

import "time"

// Locker 通讯录编辑锁
type Locker interface {
	//Lock 非阻塞锁
	Lock(time.Duration) error
	//TryLock 自旋锁
	TryLock(time.Duration) error
	// Unlock 解锁
	Unlock() error
}
