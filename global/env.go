package global

import (
	"github.com/haierkeys/note-revision-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Note Revision Service"
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
