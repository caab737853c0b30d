package db

import (
	"fmt"
	"strconv"
)

func IntToSnowflake(id uint64) string {
	strId := fmt.Sprintf("%v", id)
	return strId
}

func SnowflakeToInt(i string) (uint64, error) {
	return strconv.ParseUint(i, 10, 64)
}
