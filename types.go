package tds

import "strconv"

// db-lib integer types
type DBINT int32
type RETCODE int32
type STATUS int32

// ColumnType is the db-lib type code reported for a result column
type ColumnType int32

// Column type codes as reported by dbcoltype
const (
	SYBIMAGE            ColumnType = 34
	SYBTEXT             ColumnType = 35
	SYBUNIQUE           ColumnType = 36
	SYBVARBINARY        ColumnType = 37
	SYBVARCHAR          ColumnType = 39
	SYBMSDATE           ColumnType = 40
	SYBMSTIME           ColumnType = 41
	SYBMSDATETIME2      ColumnType = 42
	SYBMSDATETIMEOFFSET ColumnType = 43
	SYBBINARY           ColumnType = 45
	SYBCHAR             ColumnType = 47
	SYBINT1             ColumnType = 48
	SYBBIT              ColumnType = 50
	SYBINT2             ColumnType = 52
	SYBINT4             ColumnType = 56
	SYBDATETIME4        ColumnType = 58
	SYBREAL             ColumnType = 59
	SYBMONEY            ColumnType = 60
	SYBDATETIME         ColumnType = 61
	SYBFLT8             ColumnType = 62
	SYBNTEXT            ColumnType = 99
	SYBNVARCHAR         ColumnType = 103
	SYBBITN             ColumnType = 104
	SYBDECIMAL          ColumnType = 106
	SYBNUMERIC          ColumnType = 108
	SYBFLTN             ColumnType = 109
	SYBMONEYN           ColumnType = 110
	SYBDATETIMN         ColumnType = 111
	SYBMONEY4           ColumnType = 122
	SYBINT8             ColumnType = 127
	XSYBVARBINARY       ColumnType = 165
	XSYBVARCHAR         ColumnType = 167
	XSYBBINARY          ColumnType = 173
	XSYBCHAR            ColumnType = 175
	XSYBNVARCHAR        ColumnType = 231
	XSYBNCHAR           ColumnType = 239
	SYBGEOGRAPHY        ColumnType = 240
	SYBGEOMETRY         ColumnType = 241
)

var columnTypeNames = map[ColumnType]string{
	SYBIMAGE:            "image",
	SYBTEXT:             "text",
	SYBUNIQUE:           "uniqueidentifier",
	SYBVARBINARY:        "varbinary",
	SYBVARCHAR:          "varchar",
	SYBMSDATE:           "date",
	SYBMSTIME:           "time",
	SYBMSDATETIME2:      "datetime2",
	SYBMSDATETIMEOFFSET: "datetimeoffset",
	SYBBINARY:           "binary",
	SYBCHAR:             "char",
	SYBINT1:             "tinyint",
	SYBBIT:              "bit",
	SYBINT2:             "smallint",
	SYBINT4:             "int",
	SYBDATETIME4:        "smalldatetime",
	SYBREAL:             "real",
	SYBMONEY:            "money",
	SYBDATETIME:         "datetime",
	SYBFLT8:             "float",
	SYBNTEXT:            "ntext",
	SYBNVARCHAR:         "nvarchar",
	SYBBITN:             "bit",
	SYBDECIMAL:          "decimal",
	SYBNUMERIC:          "numeric",
	SYBFLTN:             "float",
	SYBMONEYN:           "money",
	SYBDATETIMN:         "datetime",
	SYBMONEY4:           "smallmoney",
	SYBINT8:             "bigint",
	XSYBVARBINARY:       "varbinary",
	XSYBVARCHAR:         "varchar",
	XSYBBINARY:          "binary",
	XSYBCHAR:            "char",
	XSYBNVARCHAR:        "nvarchar",
	XSYBNCHAR:           "nchar",
	SYBGEOGRAPHY:        "geography",
	SYBGEOMETRY:         "geometry",
}

// String returns the SQL Server type name for the code, or "type(N)" for
// codes this package does not know.
func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Known reports whether the decoder has a rule for this code
func (t ColumnType) Known() bool {
	_, ok := columnTypeNames[t]
	return ok
}

// db-lib return codes
const (
	SUCCEED         RETCODE = 1
	FAIL            RETCODE = 0
	NO_MORE_RESULTS RETCODE = 2
)

// dbnextrow status codes
const (
	REG_ROW      STATUS = -1
	NO_MORE_ROWS STATUS = -2
	BUF_FULL     STATUS = -3
)

// Login record fields for dbsetlname
const (
	DBSETHOST = 1
	DBSETUSER = 2
	DBSETPWD  = 3
	DBSETAPP  = 5
)

// Error handler return values
const (
	INT_EXIT     = 0
	INT_CONTINUE = 1
	INT_CANCEL   = 2
)

// DBDATEREC2 mirrors the structure filled by dbanydatecrack
type DBDATEREC2 struct {
	DateYear    int32
	Quarter     int32
	DateMonth   int32
	DateDMonth  int32
	DateDYear   int32
	Week        int32
	DateDWeek   int32
	DateHour    int32
	DateMinute  int32
	DateSecond  int32
	DateNSecond int32
	DateTZone   int32
}

// IsSuccess reports whether a db-lib return code indicates success
func IsSuccess(ret RETCODE) bool {
	return ret == SUCCEED
}
