package engine

import "errors"

// Validation rejections. Operations returning one of these performed no
// mutation; callers surface them as transient notices, never as failures
// that crash anything.
var (
	ErrBlankName         = errors.New("tên người chơi không được để trống")
	ErrPlayerNotFound    = errors.New("không tìm thấy người chơi")
	ErrGuestImmutable    = errors.New("không thể thay đổi người chơi vãng lai")
	ErrGuestNotAssign    = errors.New("không thể xếp khách vãng lai vào sân")
	ErrInvalidCourt      = errors.New("sân không hợp lệ")
	ErrInvalidSlot       = errors.New("vị trí không hợp lệ")
	ErrSlotOccupied      = errors.New("vị trí đã có người chơi")
	ErrNoUnassigned      = errors.New("không có người chơi nào để xếp sân")
	ErrNotEnoughPlayers  = errors.New("không đủ người chơi để kết thúc trận đấu")
	ErrResultPending     = errors.New("trận đấu đang chờ kết quả")
	ErrNoPendingMatch    = errors.New("không có trận đấu nào đang chờ kết quả")
	ErrInvalidWinner     = errors.New("kết quả trận đấu không hợp lệ")
	ErrEmptyRoster       = errors.New("không có người chơi nào để lưu")
	ErrInvalidGameType   = errors.New("loại trận đấu không hợp lệ")
	ErrInvalidImportMode = errors.New("chế độ nhập không hợp lệ")
	ErrInvalidCatalog    = errors.New("danh mục không hợp lệ")
)
