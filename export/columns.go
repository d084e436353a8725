package export

import "reflect"

type columns struct {
	headers       Headers               //导出表配置
	fields        []string              //导出字段名
	titles        []string              //导出列名
	nums          int                   //列数量
	keyIndex      map[string]int        //列字段索引映射
	columnRenders map[string]CellRender //列字段渲染函数映射
}

func newColumns(headers Headers) *columns {
	size := len(headers)
	if size == 0 {
		panic("header is empty")
	}
	c := &columns{
		headers:       headers,
		fields:        make([]string, size),
		titles:        make([]string, size),
		nums:          size,
		keyIndex:      make(map[string]int),
		columnRenders: make(map[string]CellRender),
	}
	for i := 0; i < size; i++ {
		c.fields[i] = headers[i].Field
		c.titles[i] = headers[i].Title
		c.keyIndex[headers[i].Field] = i
		c.columnRenders[headers[i].Field] = headers[i].CellRender
	}
	return c
}

func (c *columns) getTitleToAny() []any {
	res := make([]any, len(c.titles))
	for i := range c.titles {
		res[i] = c.titles[i]
	}
	return res
}

// processRow 把一行数据按表头顺序展开，支持 map、struct、slice 及其指针
func (c *columns) processRow(rowData reflect.Value, rawData any, row, colStart int) []any {
	values := make([]any, c.nums)
	if !rowData.IsValid() {
		return values
	}
	switch rowData.Kind() {
	case reflect.Ptr, reflect.Interface:
		return c.processRow(rowData.Elem(), rawData, row, colStart)
	case reflect.Map:
		for i, field := range c.fields {
			values[i] = c.processCell(field, rowData.MapIndex(reflect.ValueOf(field)), rawData, row, colStart+i+1)
		}
	case reflect.Struct:
		got := make([]bool, c.nums)
		typ := rowData.Type()
		for i := 0; i < typ.NumField(); i++ {
			key := typ.Field(i).Name
			//读取tag
			if k, ok := typ.Field(i).Tag.Lookup(TagName); ok {
				key = k
			}
			if idx, ok := c.keyIndex[key]; ok {
				got[idx] = true
				values[idx] = c.processCell(key, rowData.Field(i), rawData, row, colStart+idx+1)
			}
		}
		//没取到的字段得补充下
		for idx, ok := range got {
			if !ok {
				values[idx] = c.processCell(c.fields[idx], nilValue, rawData, row, colStart+idx+1)
			}
		}
	case reflect.Slice, reflect.Array:
		l := rowData.Len()
		for i := 0; i < c.nums; i++ {
			val := nilValue
			if i < l {
				val = rowData.Index(i)
			}
			values[i] = c.processCell(c.fields[i], val, rawData, row, colStart+i+1)
		}
	}
	return values
}

func (c *columns) processCell(field string, val reflect.Value, rawData any, row, col int) any {
	var v any
	if val.IsValid() && val.CanInterface() {
		v = val.Interface()
	}
	if c.columnRenders[field] != nil {
		return c.columnRenders[field](rawData, v, row, col)
	}
	return v
}
