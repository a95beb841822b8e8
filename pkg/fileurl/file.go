package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExist determines if a file or directory exists
// IsExist 判断文件或目录是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsFile determines if the given path is a file
// IsFile 判断所给路径是否为文件
func IsFile(path string) bool {
	return !IsDir(path)
}

// CreatePath creates the parent directories of path
// CreatePath 创建 path 的上级目录
func CreatePath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// PathSuffixCheckAdd appends suffix if path does not end with it
// PathSuffixCheckAdd 若 path 不以 suffix 结尾则追加
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		return path + suffix
	}
	return path
}

// GetExePath gets the directory of the running executable
// GetExePath 获取可执行文件所在目录
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(exe)
}
