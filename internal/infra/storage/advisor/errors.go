package advisor

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда советник не найден
	ErrAdvisorNotFound = errors.New("advisor.repository: advisor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("advisor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("advisor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("advisor.repository: failed to scan row")
)
