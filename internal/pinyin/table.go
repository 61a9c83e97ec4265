// Package pinyin implements romanization-aware fuzzy matching for
// Chinese building and room names. The tables below are maintained
// manually; names must exactly match those in the campus directory
// for the registered forms to apply.
package pinyin

// entry registers the known romanized forms for one building name:
// the full transliteration first, then common abbreviations.
type entry struct {
	Name  string
	Forms []string
}

// buildingForms lists registered romanizations for common buildings.
// Order matches the campus directory groupings for easier maintenance;
// lookup goes through formsByName.
var buildingForms = []entry{
	// 正心楼系列
	{"正心楼", []string{"zhengxinlou", "zxl", "zhengxin"}},
	{"正心楼A座", []string{"zhengxinloua", "zxla", "zhengxina"}},
	{"正心楼B座", []string{"zhengxinloub", "zxlb", "zhengxinb"}},

	// 明德楼系列
	{"明德楼", []string{"mingdelou", "mdl", "mingde"}},
	{"明德楼A座", []string{"mingdeloua", "mdla", "mingdea"}},
	{"明德楼B座", []string{"mingdeloub", "mdlb", "mingdeb"}},

	// 格物楼系列
	{"格物楼", []string{"gewulou", "gwl", "gewu"}},
	{"格物楼A座", []string{"gewuloua", "gwla", "gewua"}},
	{"格物楼B座", []string{"gewuloub", "gwlb", "gewub"}},

	// 致知楼系列
	{"致知楼", []string{"zhizhilou", "zzl", "zhizhi"}},
	{"致知楼A座", []string{"zhizhiloua", "zzla", "zhizhia"}},
	{"致知楼B座", []string{"zhizhiloub", "zzlb", "zhizhib"}},

	// 诚意楼系列
	{"诚意楼", []string{"chengyilou", "cyl", "chengyi"}},

	// 活动中心系列
	{"学生活动中心", []string{"xueshenghuodongzhongxin", "xshdzx", "huodongzhongxin", "hdzx"}},
	{"文体活动中心", []string{"wentihuodongzhongxin", "wthdzx", "wenti"}},

	// 图书馆
	{"图书馆", []string{"tushuguan", "tsg", "tushu"}},
	{"新图书馆", []string{"xintushuguan", "xtsg", "xintushu"}},
	{"老图书馆", []string{"laotushuguan", "ltsg", "laotushu"}},

	// 实验楼系列
	{"实验楼", []string{"shiyanlou", "syl", "shiyan"}},
	{"第一实验楼", []string{"diyishiyanlou", "dysyl", "diyishiyan"}},
	{"第二实验楼", []string{"diershiyanlou", "desyl", "diershiyan"}},
	{"第三实验楼", []string{"disanshiyanlou", "dssyl", "disanshiyan"}},

	// 教学楼系列 (数字)
	{"1号楼", []string{"1haolou", "1hl", "1hao", "yihaolou"}},
	{"2号楼", []string{"2haolou", "2hl", "2hao", "erhaolou"}},
	{"3号楼", []string{"3haolou", "3hl", "3hao", "sanhaolou"}},
	{"4号楼", []string{"4haolou", "4hl", "4hao", "sihaolou"}},
	{"5号楼", []string{"5haolou", "5hl", "5hao", "wuhaolou"}},
	{"6号楼", []string{"6haolou", "6hl", "6hao", "liuhaolou"}},
	{"7号楼", []string{"7haolou", "7hl", "7hao", "qihaolou"}},
	{"8号楼", []string{"8haolou", "8hl", "8hao", "bahaolou"}},
	{"9号楼", []string{"9haolou", "9hl", "9hao", "jiuhaolou"}},
	{"10号楼", []string{"10haolou", "10hl", "10hao", "shihaolou"}},

	// 主楼系列
	{"主楼", []string{"zhulou", "zl", "zhu"}},
	{"主楼A座", []string{"zhuloua", "zla", "zhua"}},
	{"主楼B座", []string{"zhuloub", "zlb", "zhub"}},
	{"主楼C座", []string{"zhulouc", "zlc", "zhuc"}},

	// 其他常见建筑
	{"行政楼", []string{"xingzhenglou", "xzl", "xingzheng"}},
	{"办公楼", []string{"bangonglou", "bgl", "bangong"}},
	{"会议中心", []string{"huiyizhongxin", "hyzx", "huiyi"}},
	{"体育馆", []string{"tiyuguan", "tyg", "tiyu"}},
	{"游泳馆", []string{"youyongguan", "yyg", "youyong"}},
	{"食堂", []string{"shitang", "st", "shi"}},
	{"学生食堂", []string{"xueshengshitang", "xsst", "xueshengshi"}},

	// 学院楼
	{"计算机学院", []string{"jisuanjixueyuan", "jsjxy", "jisuanji"}},
	{"电信学院", []string{"dianxinxueyuan", "dxxy", "dianxin"}},
	{"机电学院", []string{"jidianxueyuan", "jdxy", "jidian"}},
	{"土木学院", []string{"tumuxueyuan", "tmxy", "tumu"}},
	{"化工学院", []string{"huagongxueyuan", "hgxy", "huagong"}},

	// 其他可能的建筑
	{"综合楼", []string{"zonghelou", "zhl", "zonghe"}},
	{"教学楼", []string{"jiaoxuelou", "jxl", "jiaoxue"}},
	{"科研楼", []string{"keyanlou", "kyl", "keyan"}},
	{"研究生楼", []string{"yanjiushenglou", "yjsl", "yanjiusheng"}},
}

// formsByName indexes buildingForms for exact-name lookup.
var formsByName = func() map[string][]string {
	m := make(map[string][]string, len(buildingForms))
	for _, e := range buildingForms {
		m[e.Name] = e.Forms
	}
	return m
}()

// suffixSyllables are romanized syllables for common building-type
// suffixes (楼/座/馆/堂/心/园). A query containing one of these is worth
// running through the keyword heuristic.
var suffixSyllables = []string{"lou", "zuo", "guan", "tang", "xin", "yuan"}

// keywordChars maps romanized syllables to the Chinese characters they
// commonly transliterate in building names. Used by the heuristic
// fallback; ambiguity here (e.g. "xin" → 心/新) is accepted.
var keywordChars = []struct {
	Syllable string
	Chars    []string
}{
	{"zheng", []string{"正"}},
	{"xin", []string{"心", "新"}},
	{"ming", []string{"明"}},
	{"de", []string{"德"}},
	{"ge", []string{"格"}},
	{"wu", []string{"物"}},
	{"zhi", []string{"知", "致"}},
	{"zhu", []string{"主"}},
	{"shi", []string{"实", "室"}},
	{"yan", []string{"验", "研"}},
}

// roomKeywords is the subset of keyword syllables tried during
// room-name decomposition.
var roomKeywords = []string{"zheng", "xin", "ming", "de", "ge", "wu", "zhi", "zhu"}
