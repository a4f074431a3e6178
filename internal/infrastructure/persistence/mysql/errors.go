package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry MySQLの一意制約違反エラーコード
const mysqlDuplicateEntry = 1062

// isDuplicateEntry 一意制約違反かどうかを判定する
// daily_claimsやtransactionsの一意制約を冪等性ガードとして使うための判定
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
